package domain

type BlockReason string

const (
	BlockReasonBooked      BlockReason = "booked"
	BlockReasonMaintenance BlockReason = "maintenance"
)

// BlockedDate marks one calendar day of one product as unavailable. The store
// enforces at most one record per (product_id, date); a day is either free or
// blocked, never double-blocked.
type BlockedDate struct {
	ID        int32       `json:"id"`
	ProductID int32       `json:"product_id"`
	Date      string      `json:"date"` // YYYY-MM-DD
	Reason    BlockReason `json:"reason"`
	RentalID  *int32      `json:"rental_id,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}
