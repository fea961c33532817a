package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, conversation_id, product_id, sender_id, receiver_id, kind, amount_cents,
	       COALESCE(to_char(start_date, 'YYYY-MM-DD'), ''), COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''),
	       COALESCE(message, ''), status, expires_at, responded_at, created_on, updated_on`

func scanOffer(row interface{ Scan(...any) error }) (*domain.Offer, error) {
	o := &domain.Offer{}
	err := row.Scan(&o.ID, &o.ConversationID, &o.ProductID, &o.SenderID, &o.ReceiverID,
		&o.Kind, &o.AmountCents, &o.StartDate, &o.EndDate, &o.Message,
		&o.Status, &o.ExpiresAt, &o.RespondedAt, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	var startDate, endDate any
	if offer.StartDate != "" {
		startDate = offer.StartDate
	}
	if offer.EndDate != "" {
		endDate = offer.EndDate
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO offers (conversation_id, product_id, sender_id, receiver_id, kind, amount_cents,
		                     start_date, end_date, message, status, expires_at, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12) RETURNING id`,
		offer.ConversationID, offer.ProductID, offer.SenderID, offer.ReceiverID,
		offer.Kind, offer.AmountCents, startDate, endDate, offer.Message,
		offer.Status, offer.ExpiresAt, now).Scan(&offer.ID)
	if err != nil {
		return err
	}

	// The announcement message rides in the same transaction so an offer
	// never exists without its conversation entry.
	content := offer.Message
	if content == "" {
		content = "I've sent you an offer."
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content, offer_id, created_on)
		 VALUES ($1, $2, $3, $4, $5)`,
		offer.ConversationID, offer.SenderID, content, offer.ID, now)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET last_message_at = $1 WHERE id = $2`, now, offer.ConversationID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	offer.CreatedOn = now
	offer.UpdatedOn = now
	return nil
}

func (r *offerRepository) GetByID(ctx context.Context, id int32) (*domain.Offer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	offer, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "offer", ID: id}
	}
	return offer, err
}

func (r *offerRepository) ListByConversation(ctx context.Context, conversationID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM offers WHERE conversation_id = $1`, conversationID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE conversation_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		conversationID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, *o)
	}
	return offers, count, rows.Err()
}

func (r *offerRepository) Reject(ctx context.Context, offerID int32, respondedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE offers SET status = $1, responded_at = $2, updated_on = $2
		 WHERE id = $3 AND status = $4 AND expires_at > $2`,
		domain.OfferStatusRejected, respondedAt, offerID, domain.OfferStatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *offerRepository) DeletePending(ctx context.Context, offerID int32) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM offers WHERE id = $1 AND status = $2`,
		offerID, domain.OfferStatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
