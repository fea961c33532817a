package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gearmarket-backend/internal/domain"
)

func newAvailabilityServiceForTest() (*MockAvailabilityRepo, *MockProductRepo, AvailabilityService) {
	availRepo := new(MockAvailabilityRepo)
	productRepo := new(MockProductRepo)
	return availRepo, productRepo, NewAvailabilityService(availRepo, productRepo)
}

func TestAvailabilityService_GetCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToThreeMonthWindow", func(t *testing.T) {
		availRepo, _, svc := newAvailabilityServiceForTest()
		today := time.Now().Format(domain.DateLayout)
		horizon := time.Now().AddDate(0, 3, 0).Format(domain.DateLayout)
		availRepo.On("ListBlocked", ctx, int32(10), today, horizon).
			Return([]domain.BlockedDate{{ProductID: 10, Date: today, Reason: domain.BlockReasonBooked}}, nil)

		blocked, err := svc.GetCalendar(ctx, 10, "", "")
		assert.NoError(t, err)
		assert.Len(t, blocked, 1)
		availRepo.AssertExpectations(t)
	})

	t.Run("ExplicitWindow", func(t *testing.T) {
		availRepo, _, svc := newAvailabilityServiceForTest()
		availRepo.On("ListBlocked", ctx, int32(10), "2026-09-01", "2026-09-30").
			Return([]domain.BlockedDate{}, nil)

		_, err := svc.GetCalendar(ctx, 10, "2026-09-01", "2026-09-30")
		assert.NoError(t, err)
	})

	t.Run("InvertedWindow", func(t *testing.T) {
		_, _, svc := newAvailabilityServiceForTest()
		_, err := svc.GetCalendar(ctx, 10, "2026-09-30", "2026-09-01")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAvailabilityService_CheckAvailability(t *testing.T) {
	ctx := context.Background()

	availRepo, _, svc := newAvailabilityServiceForTest()
	availRepo.On("IsRangeFree", ctx, int32(10), "2026-09-10", "2026-09-12").Return(true, nil)

	free, err := svc.CheckAvailability(ctx, 10, "2026-09-10", "2026-09-12")
	assert.NoError(t, err)
	assert.True(t, free)

	_, err = svc.CheckAvailability(ctx, 10, "not-a-date", "2026-09-12")
	assert.True(t, domain.IsValidation(err))
}

func TestAvailabilityService_BlockMaintenance(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: 10, OwnerID: 2}

	t.Run("OwnerBlocks", func(t *testing.T) {
		availRepo, productRepo, svc := newAvailabilityServiceForTest()
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)
		availRepo.On("BlockMaintenance", ctx, int32(10), []string{"2026-09-10", "2026-09-11"}, "tune-up").Return(nil)

		err := svc.BlockMaintenance(ctx, 2, 10, []string{"2026-09-10", "2026-09-11"}, "tune-up")
		assert.NoError(t, err)
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		_, productRepo, svc := newAvailabilityServiceForTest()
		productRepo.On("GetByID", ctx, int32(10)).Return(product, nil)

		err := svc.BlockMaintenance(ctx, 1, 10, []string{"2026-09-10"}, "")
		assert.True(t, domain.IsAuthorization(err))
	})

	t.Run("EmptyDates", func(t *testing.T) {
		_, _, svc := newAvailabilityServiceForTest()
		err := svc.BlockMaintenance(ctx, 2, 10, nil, "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("MalformedDate", func(t *testing.T) {
		_, _, svc := newAvailabilityServiceForTest()
		err := svc.BlockMaintenance(ctx, 2, 10, []string{"09/10/2026"}, "")
		assert.True(t, domain.IsValidation(err))
	})
}
