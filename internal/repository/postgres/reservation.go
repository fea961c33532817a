package postgres

import (
	"context"
	"database/sql"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

// reservationRepository materializes accepted intents. Each method runs as a
// single transaction so a conflict partway through leaves no trace: no
// offer-accepted-but-no-rental states, no partially blocked ranges.
type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// acceptOffer performs the compare-and-set on the offer row. The status and
// deadline predicates are part of the UPDATE itself, so of two concurrent
// responders exactly one sees a row change.
func acceptOffer(ctx context.Context, tx *sql.Tx, accept *repository.OfferAcceptance, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE offers SET status = $1, responded_at = $2, updated_on = $2
		 WHERE id = $3 AND status = $4 AND expires_at > $2`,
		domain.OfferStatusAccepted, now, accept.OfferID, domain.OfferStatusPending)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ConflictError{Reason: "offer can no longer be responded to"}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content, offer_id, created_on)
		 VALUES ($1, $2, $3, $4, $5)`,
		accept.ConversationID, accept.ActorID, accept.SystemMessage, accept.OfferID, now)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET last_message_at = $1 WHERE id = $2`, now, accept.ConversationID)
	return err
}

func (r *reservationRepository) CreateRental(ctx context.Context, rental *domain.Rental, accept *repository.OfferAcceptance) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if accept != nil {
		if err := acceptOffer(ctx, tx, accept, now); err != nil {
			return err
		}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO rentals (product_id, renter_id, start_date, end_date, total_price_cents, status, notes, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		rental.ProductID, rental.RenterID, rental.StartDate, rental.EndDate,
		rental.TotalPriceCents, rental.Status, rental.Notes, now).Scan(&rental.ID)
	if err != nil {
		return err
	}

	start, err := domain.ParseDate(rental.StartDate)
	if err != nil {
		return err
	}
	end, err := domain.ParseDate(rental.EndDate)
	if err != nil {
		return err
	}

	// The unique index on (product_id, blocked_date) is what makes this the
	// authoritative availability check: a concurrent reservation that got any
	// of these days first turns our insert into a conflict, and the rollback
	// removes the rental row inserted above.
	for _, date := range domain.DatesBetween(start, end) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rental_availability (product_id, blocked_date, block_type, rental_id, notes, created_on, updated_on)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			rental.ProductID, date, domain.BlockReasonBooked, rental.ID, rental.Notes, now)
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.ConflictError{Reason: "product is no longer available for the selected dates"}
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	rental.CreatedOn = now
	rental.UpdatedOn = now
	logger.DatabaseResult("INSERT", 1, nil, "rentalID", rental.ID, "productID", rental.ProductID)
	return nil
}

func (r *reservationRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase, accept *repository.OfferAcceptance) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if accept != nil {
		if err := acceptOffer(ctx, tx, accept, now); err != nil {
			return err
		}
	}

	var alreadySold bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM purchases WHERE product_id = $1 AND status = $2)`,
		purchase.ProductID, domain.PurchaseStatusCompleted).Scan(&alreadySold)
	if err != nil {
		return err
	}
	if alreadySold {
		return &domain.ConflictError{Reason: "product has already been sold"}
	}

	// Clearing the availability flag doubles as the sale's race guard: the
	// predicate makes the second concurrent buyer update zero rows.
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET is_available = false
		 WHERE id = $1 AND is_available = true AND is_for_sale = true`,
		purchase.ProductID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ConflictError{Reason: "product is no longer available for purchase"}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO purchases (product_id, buyer_id, price_cents, status, notes, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`,
		purchase.ProductID, purchase.BuyerID, purchase.PriceCents, purchase.Status, purchase.Notes, now).Scan(&purchase.ID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	purchase.CreatedOn = now
	purchase.UpdatedOn = now
	return nil
}

func (r *reservationRepository) CancelRental(ctx context.Context, rental *domain.Rental) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, updated_on = NOW()
		 WHERE id = $2 AND status IN ($3, $4, $5)`,
		domain.RentalStatusCancelled, rental.ID,
		domain.RentalStatusPending, domain.RentalStatusApproved, domain.RentalStatusActive)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, &domain.ConflictError{Reason: "rental is no longer cancellable"}
	}

	// Only this rental's booked days are freed; maintenance blocks and other
	// rentals' days stay put.
	freed, err := tx.ExecContext(ctx,
		`DELETE FROM rental_availability
		 WHERE product_id = $1 AND rental_id = $2 AND block_type = $3`,
		rental.ProductID, rental.ID, domain.BlockReasonBooked)
	if err != nil {
		return 0, err
	}
	count, err := freed.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	rental.Status = domain.RentalStatusCancelled
	return count, nil
}

func (r *reservationRepository) CancelPurchase(ctx context.Context, purchase *domain.Purchase) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE purchases SET status = $1, updated_on = NOW() WHERE id = $2 AND status = $3`,
		domain.PurchaseStatusCancelled, purchase.ID, domain.PurchaseStatusPending)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ConflictError{Reason: "purchase is no longer cancellable"}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET is_available = true WHERE id = $1`, purchase.ProductID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	purchase.Status = domain.PurchaseStatusCancelled
	return nil
}

func (r *reservationRepository) CompletePurchase(ctx context.Context, purchaseID int32) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE purchases SET status = $1, updated_on = NOW() WHERE id = $2 AND status = $3`,
		domain.PurchaseStatusCompleted, purchaseID, domain.PurchaseStatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *reservationRepository) UpdateRentalStatus(ctx context.Context, rentalID int32, from, to domain.RentalStatus, notes string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rentals SET status = $1, notes = COALESCE(NULLIF($2, ''), notes), updated_on = NOW()
		 WHERE id = $3 AND status = $4`,
		to, notes, rentalID, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
