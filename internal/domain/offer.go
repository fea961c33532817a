package domain

import "time"

type OfferKind string

const (
	OfferKindRental OfferKind = "rental"
	OfferKindSale   OfferKind = "sale"
)

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
	OfferStatusExpired  OfferStatus = "expired"
)

// Offer is a negotiated rental or sale proposal inside a conversation.
// Status moves pending -> accepted/rejected/expired and never back; offers
// are kept after resolution as an audit trail.
type Offer struct {
	ID             int32       `json:"id"`
	ConversationID int32       `json:"conversation_id"`
	ProductID      int32       `json:"product_id"`
	SenderID       int32       `json:"sender_id"`
	ReceiverID     int32       `json:"receiver_id"`
	Kind           OfferKind   `json:"kind"`
	AmountCents    int32       `json:"amount_cents"`
	StartDate      string      `json:"start_date,omitempty"` // rental offers only
	EndDate        string      `json:"end_date,omitempty"`
	Message        string      `json:"message,omitempty"`
	Status         OfferStatus `json:"status"`
	ExpiresAt      time.Time   `json:"expires_at"`
	RespondedAt    *time.Time  `json:"responded_at,omitempty"`
	CreatedOn      time.Time   `json:"created_on"`
	UpdatedOn      time.Time   `json:"updated_on"`
}

func (o *Offer) IsPending() bool {
	return o.Status == OfferStatusPending
}

// IsExpired is true once the deadline has passed, even while the persisted
// status still says pending. The housekeeping sweep flips the stored status
// later; reads must not depend on it.
func (o *Offer) IsExpired(now time.Time) bool {
	return o.Status == OfferStatusExpired || !now.Before(o.ExpiresAt)
}

// CanBeResponded reports whether accept/reject is still possible.
func (o *Offer) CanBeResponded(now time.Time) bool {
	return o.IsPending() && !o.IsExpired(now)
}
