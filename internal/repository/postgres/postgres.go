package postgres

import (
	"database/sql"
	"fmt"

	"gearmarket-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.UserRepository
	repository.ConversationRepository
	repository.MessageRepository
	repository.AvailabilityRepository
	repository.OfferRepository
	repository.ReservationRepository
	repository.RentalRepository
	repository.PurchaseRepository
	repository.NotificationRepository
	repository.DeviceTokenRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProductRepository:      NewProductRepository(db),
		UserRepository:         NewUserRepository(db),
		ConversationRepository: NewConversationRepository(db),
		MessageRepository:      NewMessageRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		OfferRepository:        NewOfferRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		RentalRepository:       NewRentalRepository(db),
		PurchaseRepository:     NewPurchaseRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DeviceTokenRepository:  NewDeviceTokenRepository(db),
	}
}

// uniqueViolation is the postgres error code raised when an insert collides
// with a unique index. For rental_availability's (product_id, blocked_date)
// index this is the canonical lost-the-race signal.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
