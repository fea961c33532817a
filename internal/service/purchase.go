package service

import (
	"context"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	reservation  ReservationService
	notifier     Notifier
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	reservation ReservationService,
	notifier Notifier,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		reservation:  reservation,
		notifier:     notifier,
	}
}

func (s *purchaseService) RequestPurchase(ctx context.Context, buyerID, productID int32, notes string) (*domain.Purchase, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID == buyerID {
		return nil, &domain.ValidationError{Field: "product_id", Reason: "you cannot buy your own product"}
	}

	purchase, err := s.reservation.MaterializeSale(ctx, SaleIntent{
		ProductID: productID,
		BuyerID:   buyerID,
		Notes:     notes,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PurchaseOrdered(ctx, purchase, product)
	return purchase, nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, userID, purchaseID int32) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, purchase.ProductID)
	if err != nil {
		return nil, err
	}
	if userID != purchase.BuyerID && userID != product.OwnerID {
		return nil, &domain.AuthorizationError{Reason: "purchase does not involve you"}
	}
	return purchase, nil
}

func (s *purchaseService) ListMyPurchases(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Purchase, int32, error) {
	return s.purchaseRepo.ListByBuyer(ctx, userID, page, pageSize)
}
