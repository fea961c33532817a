package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gearmarket-backend/internal/domain"
)

func newOfferServiceForTest() (*MockOfferRepo, *MockConversationRepo, *MockMessageRepo, *MockProductRepo, *MockAvailabilityRepo, *MockReservationService, OfferService) {
	offerRepo := new(MockOfferRepo)
	convRepo := new(MockConversationRepo)
	messageRepo := new(MockMessageRepo)
	productRepo := new(MockProductRepo)
	availRepo := new(MockAvailabilityRepo)
	reservation := new(MockReservationService)
	svc := NewOfferService(offerRepo, convRepo, messageRepo, productRepo, availRepo, reservation, noopNotifier{}, 7)
	return offerRepo, convRepo, messageRepo, productRepo, availRepo, reservation, svc
}

func TestOfferService_CreateOffer(t *testing.T) {
	ctx := context.Background()
	conv := &domain.Conversation{ID: 5, UserOneID: 1, UserTwoID: 2}
	product := &domain.Product{ID: 10, OwnerID: 2, IsAvailable: true, IsForSale: true, PricePerDayCents: 5000, SalePriceCents: 90000}

	t.Run("RentalOffer", func(t *testing.T) {
		offerRepo, convRepo, _, productRepo, availRepo, _, svc := newOfferServiceForTest()
		convRepo.On("GetByID", ctx, int32(5)).Return(conv, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)
		availRepo.On("IsRangeFree", ctx, int32(10), "2026-09-10", "2026-09-12").Return(true, nil)
		offerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Offer")).Return(nil)

		before := time.Now()
		offer, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{
			ProductID:   10,
			Kind:        domain.OfferKindRental,
			AmountCents: 12000,
			StartDate:   "2026-09-10",
			EndDate:     "2026-09-12",
		})

		assert.NoError(t, err)
		assert.Equal(t, int32(2), offer.ReceiverID)
		assert.Equal(t, domain.OfferStatusPending, offer.Status)
		// TTL is seven days from creation.
		assert.WithinDuration(t, before.Add(7*24*time.Hour), offer.ExpiresAt, time.Minute)
		offerRepo.AssertExpectations(t)
	})

	t.Run("SaleOfferClearsDates", func(t *testing.T) {
		offerRepo, convRepo, _, productRepo, _, _, svc := newOfferServiceForTest()
		convRepo.On("GetByID", ctx, int32(5)).Return(conv, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)
		offerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Offer")).Return(nil)

		offer, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{
			ProductID:   10,
			Kind:        domain.OfferKindSale,
			AmountCents: 85000,
			StartDate:   "2026-09-10",
			EndDate:     "2026-09-12",
		})

		assert.NoError(t, err)
		assert.Empty(t, offer.StartDate)
		assert.Empty(t, offer.EndDate)
	})

	t.Run("InvalidKind", func(t *testing.T) {
		_, _, _, _, _, _, svc := newOfferServiceForTest()
		_, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{ProductID: 10, Kind: "lease", AmountCents: 100})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, _, _, _, _, _, svc := newOfferServiceForTest()
		_, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{ProductID: 10, Kind: domain.OfferKindSale, AmountCents: 0})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NotAParticipant", func(t *testing.T) {
		_, convRepo, _, _, _, _, svc := newOfferServiceForTest()
		convRepo.On("GetByID", ctx, int32(5)).Return(conv, nil)

		_, err := svc.CreateOffer(ctx, 99, 5, CreateOfferInput{ProductID: 10, Kind: domain.OfferKindSale, AmountCents: 100})
		assert.True(t, domain.IsAuthorization(err))
	})

	t.Run("RentalDatesAlreadyBlocked", func(t *testing.T) {
		_, convRepo, _, productRepo, availRepo, _, svc := newOfferServiceForTest()
		convRepo.On("GetByID", ctx, int32(5)).Return(conv, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)
		availRepo.On("IsRangeFree", ctx, int32(10), "2026-09-10", "2026-09-12").Return(false, nil)

		_, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{
			ProductID:   10,
			Kind:        domain.OfferKindRental,
			AmountCents: 12000,
			StartDate:   "2026-09-10",
			EndDate:     "2026-09-12",
		})
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("RentalSingleDayRejected", func(t *testing.T) {
		_, convRepo, _, productRepo, _, _, svc := newOfferServiceForTest()
		convRepo.On("GetByID", ctx, int32(5)).Return(conv, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)

		_, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{
			ProductID:   10,
			Kind:        domain.OfferKindRental,
			AmountCents: 12000,
			StartDate:   "2026-09-10",
			EndDate:     "2026-09-10",
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("SaleOfferOnNonSaleProduct", func(t *testing.T) {
		_, convRepo, _, productRepo, _, _, svc := newOfferServiceForTest()
		rentOnly := &domain.Product{ID: 10, OwnerID: 2, IsAvailable: true, IsForSale: false}
		convRepo.On("GetByID", ctx, int32(5)).Return(conv, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(rentOnly, nil)

		_, err := svc.CreateOffer(ctx, 1, 5, CreateOfferInput{ProductID: 10, Kind: domain.OfferKindSale, AmountCents: 100})
		assert.True(t, domain.IsConflict(err))
	})
}

func TestOfferService_AcceptOffer(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: 10, OwnerID: 2, IsAvailable: true, PricePerDayCents: 5000}

	pendingRentalOffer := func() *domain.Offer {
		return &domain.Offer{
			ID: 42, ConversationID: 5, ProductID: 10, SenderID: 1, ReceiverID: 2,
			Kind: domain.OfferKindRental, AmountCents: 12000,
			StartDate: "2026-09-10", EndDate: "2026-09-12",
			Status: domain.OfferStatusPending, ExpiresAt: time.Now().Add(24 * time.Hour),
		}
	}

	t.Run("RentalOffer", func(t *testing.T) {
		offerRepo, _, _, productRepo, _, reservation, svc := newOfferServiceForTest()
		offer := pendingRentalOffer()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)

		rental := &domain.Rental{ID: 7, ProductID: 10, RenterID: 1, TotalPriceCents: 15000, Status: domain.RentalStatusPending}
		reservation.On("MaterializeRental", ctx, mock.MatchedBy(func(intent RentalIntent) bool {
			return intent.ProductID == 10 &&
				intent.RenterID == 1 && // the sender becomes the renter
				intent.StartDate == "2026-09-10" &&
				intent.EndDate == "2026-09-12" &&
				intent.Accept != nil &&
				intent.Accept.OfferID == 42 &&
				intent.Accept.ActorID == 2
		})).Return(rental, nil)

		result, err := svc.AcceptOffer(ctx, 2, 42)
		assert.NoError(t, err)
		assert.Equal(t, rental, result.Rental)
		assert.Nil(t, result.Purchase)
		assert.Equal(t, domain.OfferStatusAccepted, result.Offer.Status)
		reservation.AssertExpectations(t)
	})

	t.Run("SaleOfferUsesNegotiatedAmount", func(t *testing.T) {
		offerRepo, _, _, productRepo, _, reservation, svc := newOfferServiceForTest()
		offer := pendingRentalOffer()
		offer.Kind = domain.OfferKindSale
		offer.AmountCents = 85000
		offer.StartDate, offer.EndDate = "", ""
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)

		purchase := &domain.Purchase{ID: 3, ProductID: 10, BuyerID: 1, PriceCents: 85000}
		reservation.On("MaterializeSale", ctx, mock.MatchedBy(func(intent SaleIntent) bool {
			return intent.PriceCents == 85000 && intent.BuyerID == 1 && intent.Accept != nil
		})).Return(purchase, nil)

		result, err := svc.AcceptOffer(ctx, 2, 42)
		assert.NoError(t, err)
		assert.Equal(t, purchase, result.Purchase)
		assert.Nil(t, result.Rental)
	})

	t.Run("SenderCannotAccept", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(pendingRentalOffer(), nil)

		_, err := svc.AcceptOffer(ctx, 1, 42)
		assert.True(t, domain.IsAuthorization(err))
	})

	t.Run("ExpiredOffer", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offer := pendingRentalOffer()
		offer.ExpiresAt = time.Now().Add(-time.Hour)
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)

		_, err := svc.AcceptOffer(ctx, 2, 42)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("MaterializationConflictPropagates", func(t *testing.T) {
		// The offer stays pending when the reservation transaction loses the
		// race; nothing is half-applied.
		offerRepo, _, _, _, _, reservation, svc := newOfferServiceForTest()
		offer := pendingRentalOffer()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)
		reservation.On("MaterializeRental", ctx, mock.Anything).
			Return(nil, &domain.ConflictError{Reason: "product is no longer available for the selected dates"})

		_, err := svc.AcceptOffer(ctx, 2, 42)
		assert.True(t, domain.IsConflict(err))
		assert.Equal(t, domain.OfferStatusPending, offer.Status)
	})
}

func TestOfferService_RejectOffer(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: 10, OwnerID: 2}

	offer := func() *domain.Offer {
		return &domain.Offer{
			ID: 42, ConversationID: 5, ProductID: 10, SenderID: 1, ReceiverID: 2,
			Kind: domain.OfferKindSale, AmountCents: 85000,
			Status: domain.OfferStatusPending, ExpiresAt: time.Now().Add(24 * time.Hour),
		}
	}

	t.Run("Success", func(t *testing.T) {
		offerRepo, _, messageRepo, productRepo, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer(), nil)
		offerRepo.On("Reject", ctx, int32(42), mock.AnythingOfType("time.Time")).Return(int64(1), nil)
		messageRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)

		rejected, err := svc.RejectOffer(ctx, 2, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferStatusRejected, rejected.Status)
		assert.NotNil(t, rejected.RespondedAt)
	})

	t.Run("LostRaceToAccept", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer(), nil)
		offerRepo.On("Reject", ctx, int32(42), mock.AnythingOfType("time.Time")).Return(int64(0), nil)

		_, err := svc.RejectOffer(ctx, 2, 42)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("SenderCannotReject", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer(), nil)

		_, err := svc.RejectOffer(ctx, 1, 42)
		assert.True(t, domain.IsAuthorization(err))
	})

	t.Run("MessageFailureDoesNotUndoRejection", func(t *testing.T) {
		offerRepo, _, messageRepo, productRepo, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer(), nil)
		offerRepo.On("Reject", ctx, int32(42), mock.AnythingOfType("time.Time")).Return(int64(1), nil)
		messageRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)

		rejected, err := svc.RejectOffer(ctx, 2, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferStatusRejected, rejected.Status)
	})
}

func TestOfferService_WithdrawOffer(t *testing.T) {
	ctx := context.Background()

	offer := &domain.Offer{
		ID: 42, SenderID: 1, ReceiverID: 2,
		Status: domain.OfferStatusPending, ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	t.Run("Success", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)
		offerRepo.On("DeletePending", ctx, int32(42)).Return(int64(1), nil)

		assert.NoError(t, svc.WithdrawOffer(ctx, 1, 42))
	})

	t.Run("ReceiverCannotWithdraw", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)

		err := svc.WithdrawOffer(ctx, 2, 42)
		assert.True(t, domain.IsAuthorization(err))
	})

	t.Run("NoLongerPending", func(t *testing.T) {
		offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
		offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)
		offerRepo.On("DeletePending", ctx, int32(42)).Return(int64(0), nil)

		err := svc.WithdrawOffer(ctx, 1, 42)
		assert.True(t, domain.IsConflict(err))
	})
}

func TestOfferService_GetOffer(t *testing.T) {
	ctx := context.Background()
	offerRepo, _, _, _, _, _, svc := newOfferServiceForTest()
	offer := &domain.Offer{ID: 42, SenderID: 1, ReceiverID: 2}
	offerRepo.On("GetByID", ctx, int32(42)).Return(offer, nil)

	_, err := svc.GetOffer(ctx, 1, 42)
	assert.NoError(t, err)
	_, err = svc.GetOffer(ctx, 2, 42)
	assert.NoError(t, err)
	_, err = svc.GetOffer(ctx, 3, 42)
	assert.True(t, domain.IsAuthorization(err))
}
