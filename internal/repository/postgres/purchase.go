package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type purchaseRepository struct {
	db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

const purchaseColumns = `id, product_id, buyer_id, price_cents, status, COALESCE(notes, ''), created_on, updated_on`

func scanPurchase(row interface{ Scan(...any) error }) (*domain.Purchase, error) {
	p := &domain.Purchase{}
	err := row.Scan(&p.ID, &p.ProductID, &p.BuyerID, &p.PriceCents, &p.Status, &p.Notes, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *purchaseRepository) GetByID(ctx context.Context, id int32) (*domain.Purchase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
	purchase, err := scanPurchase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "purchase", ID: id}
	}
	return purchase, err
}

func (r *purchaseRepository) ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Purchase, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM purchases WHERE buyer_id = $1`, buyerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE buyer_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		buyerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, count, rows.Err()
}

func (r *purchaseRepository) HasCompletedForProduct(ctx context.Context, productID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM purchases WHERE product_id = $1 AND status = $2)`,
		productID, domain.PurchaseStatusCompleted).Scan(&exists)
	return exists, err
}
