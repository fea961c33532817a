package service

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type availabilityService struct {
	availRepo   repository.AvailabilityRepository
	productRepo repository.ProductRepository
}

func NewAvailabilityService(
	availRepo repository.AvailabilityRepository,
	productRepo repository.ProductRepository,
) AvailabilityService {
	return &availabilityService{
		availRepo:   availRepo,
		productRepo: productRepo,
	}
}

func (s *availabilityService) GetCalendar(ctx context.Context, productID int32, start, end string) ([]domain.BlockedDate, error) {
	now := time.Now()
	if start == "" {
		start = now.Format(domain.DateLayout)
	}
	if end == "" {
		end = now.AddDate(0, 3, 0).Format(domain.DateLayout)
	}
	if _, _, err := parseRange(start, end); err != nil {
		return nil, err
	}
	return s.availRepo.ListBlocked(ctx, productID, start, end)
}

func (s *availabilityService) CheckAvailability(ctx context.Context, productID int32, start, end string) (bool, error) {
	if _, _, err := parseRange(start, end); err != nil {
		return false, err
	}
	return s.availRepo.IsRangeFree(ctx, productID, start, end)
}

func (s *availabilityService) BlockMaintenance(ctx context.Context, actorID, productID int32, dates []string, notes string) error {
	if len(dates) == 0 {
		return &domain.ValidationError{Field: "dates", Reason: "at least one date is required"}
	}
	for _, date := range dates {
		if _, err := domain.ParseDate(date); err != nil {
			return &domain.ValidationError{Field: "dates", Reason: "invalid date: " + date}
		}
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.OwnerID != actorID {
		return &domain.AuthorizationError{Reason: "only the product owner can block maintenance dates"}
	}

	return s.availRepo.BlockMaintenance(ctx, productID, dates, notes)
}

// parseRange validates a day-granularity range with inclusive bounds;
// start == end is a valid single-day range.
func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := domain.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "start_date", Reason: "invalid date"}
	}
	e, err := domain.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "end_date", Reason: "invalid date"}
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
	}
	return s, e, nil
}
