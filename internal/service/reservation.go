package service

import (
	"context"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	rentalRepo      repository.RentalRepository
	purchaseRepo    repository.PurchaseRepository
	productRepo     repository.ProductRepository
	notifier        Notifier
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	rentalRepo repository.RentalRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	notifier Notifier,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		purchaseRepo:    purchaseRepo,
		productRepo:     productRepo,
		notifier:        notifier,
	}
}

func (s *reservationService) MaterializeRental(ctx context.Context, intent RentalIntent) (*domain.Rental, error) {
	start, end, err := parseRange(intent.StartDate, intent.EndDate)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, intent.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, &domain.ConflictError{Reason: "product is not available for rent"}
	}

	// Billing is a flat day rate over the inclusive span, regardless of any
	// negotiated offer amount.
	days := domain.DaysInclusive(start, end)
	rental := &domain.Rental{
		ProductID:       intent.ProductID,
		RenterID:        intent.RenterID,
		StartDate:       intent.StartDate,
		EndDate:         intent.EndDate,
		TotalPriceCents: days * product.PricePerDayCents,
		Status:          domain.RentalStatusPending,
		Notes:           intent.Notes,
	}

	if err := s.reservationRepo.CreateRental(ctx, rental, intent.Accept); err != nil {
		return nil, err
	}
	logger.Info("Rental materialized", "rentalID", rental.ID, "productID", rental.ProductID,
		"days", days, "totalPriceCents", rental.TotalPriceCents)
	return rental, nil
}

func (s *reservationService) MaterializeSale(ctx context.Context, intent SaleIntent) (*domain.Purchase, error) {
	product, err := s.productRepo.GetByID(ctx, intent.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsForSale {
		return nil, &domain.ConflictError{Reason: "product is not for sale"}
	}
	if !product.IsAvailable {
		return nil, &domain.ConflictError{Reason: "product is no longer available"}
	}
	sold, err := s.purchaseRepo.HasCompletedForProduct(ctx, intent.ProductID)
	if err != nil {
		return nil, err
	}
	if sold {
		return nil, &domain.ConflictError{Reason: "product has already been sold"}
	}

	price := intent.PriceCents
	if price == 0 {
		price = product.SalePriceCents
	}
	purchase := &domain.Purchase{
		ProductID:  intent.ProductID,
		BuyerID:    intent.BuyerID,
		PriceCents: price,
		Status:     domain.PurchaseStatusPending,
		Notes:      intent.Notes,
	}

	// The repository repeats the for-sale/available/not-sold checks inside
	// the transaction; the reads above only produce friendlier errors.
	if err := s.reservationRepo.CreatePurchase(ctx, purchase, intent.Accept); err != nil {
		return nil, err
	}
	logger.Info("Sale materialized", "purchaseID", purchase.ID, "productID", purchase.ProductID,
		"priceCents", purchase.PriceCents)
	return purchase, nil
}

func (s *reservationService) CancelRental(ctx context.Context, actorID, rentalID int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, rental.ProductID)
	if err != nil {
		return nil, err
	}
	if actorID != rental.RenterID && actorID != product.OwnerID {
		return nil, &domain.AuthorizationError{Reason: "only the renter or the owner can cancel a rental"}
	}

	freed, err := s.reservationRepo.CancelRental(ctx, rental)
	if err != nil {
		return nil, err
	}
	logger.Info("Rental cancelled", "rentalID", rental.ID, "datesFreed", freed)

	s.notifier.RentalStatusChanged(ctx, rental, product)
	return rental, nil
}

func (s *reservationService) CancelPurchase(ctx context.Context, actorID, purchaseID int32) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, purchase.ProductID)
	if err != nil {
		return nil, err
	}
	if actorID != purchase.BuyerID && actorID != product.OwnerID {
		return nil, &domain.AuthorizationError{Reason: "only the buyer or the owner can cancel a purchase"}
	}

	if err := s.reservationRepo.CancelPurchase(ctx, purchase); err != nil {
		return nil, err
	}
	logger.Info("Purchase cancelled", "purchaseID", purchase.ID, "productID", purchase.ProductID)
	return purchase, nil
}

func (s *reservationService) CompletePurchase(ctx context.Context, actorID, purchaseID int32) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, purchase.ProductID)
	if err != nil {
		return nil, err
	}
	if actorID != product.OwnerID {
		return nil, &domain.AuthorizationError{Reason: "only the owner can complete a purchase"}
	}

	rows, err := s.reservationRepo.CompletePurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, &domain.ConflictError{Reason: "purchase is not pending"}
	}
	purchase.Status = domain.PurchaseStatusCompleted

	s.notifier.PurchaseCompleted(ctx, purchase, product)
	return purchase, nil
}

func (s *reservationService) TransitionRental(ctx context.Context, actorID, rentalID int32, to domain.RentalStatus, notes string) (*domain.Rental, error) {
	if to == domain.RentalStatusCancelled {
		return s.CancelRental(ctx, actorID, rentalID)
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, rental.ProductID)
	if err != nil {
		return nil, err
	}
	if actorID != product.OwnerID {
		return nil, &domain.AuthorizationError{Reason: "only the product owner can update rental status"}
	}
	if !rental.Status.CanTransitionTo(to) {
		return nil, &domain.ValidationError{Field: "status",
			Reason: "cannot transition from " + string(rental.Status) + " to " + string(to)}
	}

	// Compare-and-set on the status we just read; a concurrent transition
	// makes this a conflict rather than a silent double-apply.
	rows, err := s.reservationRepo.UpdateRentalStatus(ctx, rentalID, rental.Status, to, notes)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, &domain.ConflictError{Reason: "rental status changed concurrently"}
	}
	rental.Status = to
	if notes != "" {
		rental.Notes = notes
	}

	s.notifier.RentalStatusChanged(ctx, rental, product)
	return rental, nil
}
