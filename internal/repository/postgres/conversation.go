package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type conversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByID(ctx context.Context, id int32) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_one_id, user_two_id, last_message_at FROM conversations WHERE id = $1`, id).
		Scan(&c.ID, &c.UserOneID, &c.UserTwoID, &c.LastMessageAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "conversation", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	now := time.Now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content, offer_id, created_on)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		msg.ConversationID, msg.SenderID, msg.Content, msg.OfferID, now).Scan(&msg.ID)
	if err != nil {
		return err
	}
	msg.CreatedOn = now
	_, err = r.db.ExecContext(ctx,
		`UPDATE conversations SET last_message_at = $1 WHERE id = $2`, now, msg.ConversationID)
	return err
}
