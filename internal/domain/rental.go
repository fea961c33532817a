package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusApproved  RentalStatus = "approved"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental is a reservation of a product for an inclusive date range. It is
// created together with its blocked-date records in one transaction.
type Rental struct {
	ID              int32        `json:"id"`
	ProductID       int32        `json:"product_id"`
	RenterID        int32        `json:"renter_id"`
	StartDate       string       `json:"start_date"` // YYYY-MM-DD
	EndDate         string       `json:"end_date"`
	TotalPriceCents int32        `json:"total_price_cents"`
	Status          RentalStatus `json:"status"`
	Notes           string       `json:"notes,omitempty"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}

// CanTransitionTo enforces the forward-only status path
// pending -> approved -> active -> completed, with cancelled reachable from
// any non-terminal state.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	switch next {
	case RentalStatusApproved:
		return s == RentalStatusPending
	case RentalStatusActive:
		return s == RentalStatusApproved
	case RentalStatusCompleted:
		return s == RentalStatusActive
	case RentalStatusCancelled:
		return !s.IsTerminal()
	default:
		return false
	}
}

func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}
