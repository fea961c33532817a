package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) ListBlocked(ctx context.Context, productID int32, start, end string) ([]domain.BlockedDate, error) {
	query := `SELECT id, product_id, to_char(blocked_date, 'YYYY-MM-DD'), block_type, rental_id, COALESCE(notes, '')
	          FROM rental_availability
	          WHERE product_id = $1 AND blocked_date >= $2 AND blocked_date <= $3
	          ORDER BY blocked_date`
	rows, err := r.db.QueryContext(ctx, query, productID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocked []domain.BlockedDate
	for rows.Next() {
		var bd domain.BlockedDate
		if err := rows.Scan(&bd.ID, &bd.ProductID, &bd.Date, &bd.Reason, &bd.RentalID, &bd.Notes); err != nil {
			return nil, err
		}
		blocked = append(blocked, bd)
	}
	return blocked, rows.Err()
}

func (r *availabilityRepository) IsRangeFree(ctx context.Context, productID int32, start, end string) (bool, error) {
	query := `SELECT EXISTS(
	            SELECT 1 FROM rental_availability
	            WHERE product_id = $1 AND blocked_date BETWEEN $2 AND $3)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, productID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return !exists, nil
}

func (r *availabilityRepository) BlockMaintenance(ctx context.Context, productID int32, dates []string, notes string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO rental_availability (product_id, blocked_date, block_type, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, NOW(), NOW())`
	for _, date := range dates {
		if _, err := tx.ExecContext(ctx, query, productID, date, domain.BlockReasonMaintenance, notes); err != nil {
			if isUniqueViolation(err) {
				return &domain.ConflictError{Reason: fmt.Sprintf("date %s is already blocked", date)}
			}
			return err
		}
	}

	logger.DatabaseCall("INSERT", "rental_availability", "productID", productID, "dates", len(dates))
	return tx.Commit()
}

func (r *availabilityRepository) UnblockRental(ctx context.Context, productID, rentalID int32) (int64, error) {
	query := `DELETE FROM rental_availability
	          WHERE product_id = $1 AND rental_id = $2 AND block_type = $3`
	res, err := r.db.ExecContext(ctx, query, productID, rentalID, domain.BlockReasonBooked)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
