package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// MockConversationRepo
type MockConversationRepo struct {
	mock.Mock
}

func (m *MockConversationRepo) GetByID(ctx context.Context, id int32) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockAvailabilityRepo
type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) ListBlocked(ctx context.Context, productID int32, start, end string) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, productID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}
func (m *MockAvailabilityRepo) IsRangeFree(ctx context.Context, productID int32, start, end string) (bool, error) {
	args := m.Called(ctx, productID, start, end)
	return args.Bool(0), args.Error(1)
}
func (m *MockAvailabilityRepo) BlockMaintenance(ctx context.Context, productID int32, dates []string, notes string) error {
	args := m.Called(ctx, productID, dates, notes)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) UnblockRental(ctx context.Context, productID, rentalID int32) (int64, error) {
	args := m.Called(ctx, productID, rentalID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOfferRepo
type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id int32) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) ListByConversation(ctx context.Context, conversationID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	args := m.Called(ctx, conversationID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Offer), args.Get(1).(int32), args.Error(2)
}
func (m *MockOfferRepo) Reject(ctx context.Context, offerID int32, respondedAt time.Time) (int64, error) {
	args := m.Called(ctx, offerID, respondedAt)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOfferRepo) DeletePending(ctx context.Context, offerID int32) (int64, error) {
	args := m.Called(ctx, offerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateRental(ctx context.Context, rental *domain.Rental, accept *repository.OfferAcceptance) error {
	args := m.Called(ctx, rental, accept)
	return args.Error(0)
}
func (m *MockReservationRepo) CreatePurchase(ctx context.Context, purchase *domain.Purchase, accept *repository.OfferAcceptance) error {
	args := m.Called(ctx, purchase, accept)
	return args.Error(0)
}
func (m *MockReservationRepo) CancelRental(ctx context.Context, rental *domain.Rental) (int64, error) {
	args := m.Called(ctx, rental)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReservationRepo) CancelPurchase(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}
func (m *MockReservationRepo) CompletePurchase(ctx context.Context, purchaseID int32) (int64, error) {
	args := m.Called(ctx, purchaseID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReservationRepo) UpdateRentalStatus(ctx context.Context, rentalID int32, from, to domain.RentalStatus, notes string) (int64, error) {
	args := m.Called(ctx, rentalID, from, to, notes)
	return args.Get(0).(int64), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByProduct(ctx context.Context, productID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockPurchaseRepo
type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) GetByID(ctx context.Context, id int32) (*domain.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}
func (m *MockPurchaseRepo) ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Purchase, int32, error) {
	args := m.Called(ctx, buyerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Get(1).(int32), args.Error(2)
}
func (m *MockPurchaseRepo) HasCompletedForProduct(ctx context.Context, productID int32) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) MaterializeRental(ctx context.Context, intent RentalIntent) (*domain.Rental, error) {
	args := m.Called(ctx, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockReservationService) MaterializeSale(ctx context.Context, intent SaleIntent) (*domain.Purchase, error) {
	args := m.Called(ctx, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}
func (m *MockReservationService) CancelRental(ctx context.Context, actorID, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, actorID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockReservationService) CancelPurchase(ctx context.Context, actorID, purchaseID int32) (*domain.Purchase, error) {
	args := m.Called(ctx, actorID, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}
func (m *MockReservationService) CompletePurchase(ctx context.Context, actorID, purchaseID int32) (*domain.Purchase, error) {
	args := m.Called(ctx, actorID, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}
func (m *MockReservationService) TransitionRental(ctx context.Context, actorID, rentalID int32, to domain.RentalStatus, notes string) (*domain.Rental, error) {
	args := m.Called(ctx, actorID, rentalID, to, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// noopNotifier satisfies Notifier for tests that don't assert on fan-out.
type noopNotifier struct{}

func (noopNotifier) OfferReceived(context.Context, *domain.Offer, *domain.Product)     {}
func (noopNotifier) OfferAccepted(context.Context, *domain.Offer, *domain.Product)     {}
func (noopNotifier) OfferRejected(context.Context, *domain.Offer, *domain.Product)     {}
func (noopNotifier) RentalRequested(context.Context, *domain.Rental, *domain.Product)  {}
func (noopNotifier) RentalStatusChanged(context.Context, *domain.Rental, *domain.Product) {
}
func (noopNotifier) PurchaseOrdered(context.Context, *domain.Purchase, *domain.Product)   {}
func (noopNotifier) PurchaseCompleted(context.Context, *domain.Purchase, *domain.Product) {}
