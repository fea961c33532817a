package service

import (
	"context"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	productRepo repository.ProductRepository
	availRepo   repository.AvailabilityRepository
	reservation ReservationService
	notifier    Notifier
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	productRepo repository.ProductRepository,
	availRepo repository.AvailabilityRepository,
	reservation ReservationService,
	notifier Notifier,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		productRepo: productRepo,
		availRepo:   availRepo,
		reservation: reservation,
		notifier:    notifier,
	}
}

func (s *rentalService) RequestRental(ctx context.Context, renterID, productID int32, startDate, endDate, notes string) (*domain.Rental, error) {
	if _, _, err := parseRange(startDate, endDate); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, &domain.ConflictError{Reason: "product is not available for rent"}
	}
	if product.OwnerID == renterID {
		return nil, &domain.ValidationError{Field: "product_id", Reason: "you cannot rent your own product"}
	}

	// Advisory check for a friendly error; the materialization transaction
	// repeats it authoritatively.
	free, err := s.availRepo.IsRangeFree(ctx, productID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, &domain.ConflictError{Reason: "product is not available for the selected dates"}
	}

	rental, err := s.reservation.MaterializeRental(ctx, RentalIntent{
		ProductID: productID,
		RenterID:  renterID,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     notes,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.RentalRequested(ctx, rental, product)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, rental.ProductID)
	if err != nil {
		return nil, err
	}
	if userID != rental.RenterID && userID != product.OwnerID {
		return nil, &domain.AuthorizationError{Reason: "rental does not involve you"}
	}
	return rental, nil
}

func (s *rentalService) ListMyRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByRenter(ctx, userID, status, page, pageSize)
}

func (s *rentalService) ListProductRentals(ctx context.Context, userID, productID int32) ([]domain.Rental, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != userID {
		return nil, &domain.AuthorizationError{Reason: "only the product owner can list its rentals"}
	}
	return s.rentalRepo.ListByProduct(ctx, productID)
}
