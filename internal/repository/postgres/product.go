package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, is_available, is_for_sale, price_per_day_cents, sale_price_cents
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.OwnerID, &p.Title, &p.IsAvailable, &p.IsForSale, &p.PricePerDayCents, &p.SalePriceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "product", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
