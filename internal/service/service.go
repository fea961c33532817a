package service

import (
	"context"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

// AvailabilityService is the read/maintenance surface of the availability
// ledger. Booked blocks are only ever written by the reservation factory.
type AvailabilityService interface {
	// GetCalendar lists blocked dates; empty bounds default to a window of
	// today through three months out.
	GetCalendar(ctx context.Context, productID int32, start, end string) ([]domain.BlockedDate, error)
	CheckAvailability(ctx context.Context, productID int32, start, end string) (bool, error)
	// BlockMaintenance is an owner-only action over arbitrary dates.
	BlockMaintenance(ctx context.Context, actorID, productID int32, dates []string, notes string) error
}

// CreateOfferInput is the sender's proposal. Start/end dates apply to rental
// offers only.
type CreateOfferInput struct {
	ProductID   int32
	Kind        domain.OfferKind
	AmountCents int32
	StartDate   string
	EndDate     string
	Message     string
}

// AcceptResult carries whichever record the acceptance materialized.
type AcceptResult struct {
	Offer    *domain.Offer
	Rental   *domain.Rental
	Purchase *domain.Purchase
}

type OfferService interface {
	CreateOffer(ctx context.Context, senderID, conversationID int32, in CreateOfferInput) (*domain.Offer, error)
	ListOffers(ctx context.Context, userID, conversationID int32, page, pageSize int32) ([]domain.Offer, int32, error)
	GetOffer(ctx context.Context, userID, offerID int32) (*domain.Offer, error)
	// AcceptOffer is receiver-only and materializes the rental or purchase
	// atomically with the offer's status change.
	AcceptOffer(ctx context.Context, userID, offerID int32) (*AcceptResult, error)
	RejectOffer(ctx context.Context, userID, offerID int32) (*domain.Offer, error)
	// WithdrawOffer is sender-only and limited to still-pending offers.
	WithdrawOffer(ctx context.Context, userID, offerID int32) error
}

// RentalIntent is an accepted rental intent, from an offer or a direct
// booking, ready to be materialized.
type RentalIntent struct {
	ProductID int32
	RenterID  int32
	StartDate string
	EndDate   string
	Notes     string
	Accept    *repository.OfferAcceptance
}

// SaleIntent is an accepted sale intent. A zero PriceCents means "use the
// product's listed sale price".
type SaleIntent struct {
	ProductID  int32
	BuyerID    int32
	PriceCents int32
	Notes      string
	Accept     *repository.OfferAcceptance
}

// ReservationService turns accepted intents into persisted records plus
// ledger updates, atomically, and owns the lifecycle of those records.
type ReservationService interface {
	MaterializeRental(ctx context.Context, intent RentalIntent) (*domain.Rental, error)
	MaterializeSale(ctx context.Context, intent SaleIntent) (*domain.Purchase, error)
	CancelRental(ctx context.Context, actorID, rentalID int32) (*domain.Rental, error)
	CancelPurchase(ctx context.Context, actorID, purchaseID int32) (*domain.Purchase, error)
	CompletePurchase(ctx context.Context, actorID, purchaseID int32) (*domain.Purchase, error)
	TransitionRental(ctx context.Context, actorID, rentalID int32, to domain.RentalStatus, notes string) (*domain.Rental, error)
}

// RentalService is the direct, non-negotiated booking path plus read access.
type RentalService interface {
	RequestRental(ctx context.Context, renterID, productID int32, startDate, endDate, notes string) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListMyRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListProductRentals(ctx context.Context, userID, productID int32) ([]domain.Rental, error)
}

// PurchaseService is the direct buy path plus read access.
type PurchaseService interface {
	RequestPurchase(ctx context.Context, buyerID, productID int32, notes string) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, userID, purchaseID int32) (*domain.Purchase, error)
	ListMyPurchases(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Purchase, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	RegisterDeviceToken(ctx context.Context, userID int32, token, platform string) error
}

// Notifier fans a state change out to the other party: in-app row, push,
// email. Always called after the transaction committed; failures are logged
// and swallowed, never surfaced to the caller.
type Notifier interface {
	OfferReceived(ctx context.Context, offer *domain.Offer, product *domain.Product)
	OfferAccepted(ctx context.Context, offer *domain.Offer, product *domain.Product)
	OfferRejected(ctx context.Context, offer *domain.Offer, product *domain.Product)
	RentalRequested(ctx context.Context, rental *domain.Rental, product *domain.Product)
	RentalStatusChanged(ctx context.Context, rental *domain.Rental, product *domain.Product)
	PurchaseOrdered(ctx context.Context, purchase *domain.Purchase, product *domain.Product)
	PurchaseCompleted(ctx context.Context, purchase *domain.Purchase, product *domain.Product)
}

// PushSender delivers one push message to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// EmailSender delivers one plain-text email.
type EmailSender interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}
