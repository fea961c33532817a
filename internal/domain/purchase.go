package domain

import "time"

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// Purchase is a one-time sale of a product. Creating one clears the
// product's availability flag; cancelling it restores the flag.
type Purchase struct {
	ID         int32          `json:"id"`
	ProductID  int32          `json:"product_id"`
	BuyerID    int32          `json:"buyer_id"`
	PriceCents int32          `json:"price_cents"`
	Status     PurchaseStatus `json:"status"`
	Notes      string         `json:"notes,omitempty"`
	CreatedOn  time.Time      `json:"created_on"`
	UpdatedOn  time.Time      `json:"updated_on"`
}

func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	switch next {
	case PurchaseStatusCompleted, PurchaseStatusCancelled:
		return s == PurchaseStatusPending
	default:
		return false
	}
}
