package domain

// User is a minimal snapshot used for notification addressing. Identity and
// account management are external to this service.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
