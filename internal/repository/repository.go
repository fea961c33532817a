package repository

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
)

// OfferAcceptance folds the accepting side of an offer into a reservation
// transaction. When present, the reservation write first performs a
// compare-and-set on the offer row (status must still be pending and the
// deadline must not have passed) and appends the system message to the
// conversation; zero rows updated aborts the whole transaction with a
// conflict.
type OfferAcceptance struct {
	OfferID        int32
	ConversationID int32
	ActorID        int32 // the receiver accepting the offer
	SystemMessage  string
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type ConversationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
}

type AvailabilityRepository interface {
	// ListBlocked returns blocked dates for a product ordered by date,
	// limited to the inclusive [start, end] window.
	ListBlocked(ctx context.Context, productID int32, start, end string) ([]domain.BlockedDate, error)
	// IsRangeFree is true iff no blocked date exists in [start, end].
	IsRangeFree(ctx context.Context, productID int32, start, end string) (bool, error)
	// BlockMaintenance inserts maintenance records for arbitrary dates.
	// A collision with any existing block surfaces as a ConflictError and
	// nothing is inserted.
	BlockMaintenance(ctx context.Context, productID int32, dates []string, notes string) error
	// UnblockRental deletes the booked records linked to a rental and
	// returns how many dates were freed.
	UnblockRental(ctx context.Context, productID, rentalID int32) (int64, error)
}

type OfferRepository interface {
	// Create inserts the offer and its announcement message in one
	// transaction.
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id int32) (*domain.Offer, error)
	ListByConversation(ctx context.Context, conversationID int32, page, pageSize int32) ([]domain.Offer, int32, error)
	// Reject is a compare-and-set: it only applies while the offer is
	// pending and unexpired, and reports rows affected.
	Reject(ctx context.Context, offerID int32, respondedAt time.Time) (int64, error)
	// DeletePending withdraws a still-pending offer and reports rows
	// affected.
	DeletePending(ctx context.Context, offerID int32) (int64, error)
}

// ReservationRepository is the storage arm of the reservation factory. Every
// method is a single database transaction; a failure partway leaves the
// store untouched.
type ReservationRepository interface {
	// CreateRental inserts the rental and one booked record per day of its
	// inclusive range. Any date already blocked aborts the transaction with
	// a ConflictError (unique-violation on (product_id, blocked_date) is the
	// canonical signal).
	CreateRental(ctx context.Context, rental *domain.Rental, accept *OfferAcceptance) error
	// CreatePurchase inserts the purchase and clears the product's
	// availability flag. Refused with a ConflictError if the product is no
	// longer for sale and available or a completed purchase already exists.
	CreatePurchase(ctx context.Context, purchase *domain.Purchase, accept *OfferAcceptance) error
	// CancelRental flips a non-terminal rental to cancelled and frees its
	// booked dates, returning how many were freed.
	CancelRental(ctx context.Context, rental *domain.Rental) (int64, error)
	// CancelPurchase flips a pending purchase to cancelled and restores the
	// product's availability flag.
	CancelPurchase(ctx context.Context, purchase *domain.Purchase) error
	// CompletePurchase flips a pending purchase to completed.
	CompletePurchase(ctx context.Context, purchaseID int32) (int64, error)
	// UpdateRentalStatus applies from->to as a compare-and-set and reports
	// rows affected.
	UpdateRentalStatus(ctx context.Context, rentalID int32, from, to domain.RentalStatus, notes string) (int64, error)
}

type RentalRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByProduct(ctx context.Context, productID int32) ([]domain.Rental, error)
}

type PurchaseRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Purchase, error)
	ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Purchase, int32, error)
	HasCompletedForProduct(ctx context.Context, productID int32) (bool, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type DeviceTokenRepository interface {
	Register(ctx context.Context, token *domain.DeviceToken) error
	ListByUser(ctx context.Context, userID int32) ([]domain.DeviceToken, error)
	DeleteByToken(ctx context.Context, token string) error
}
