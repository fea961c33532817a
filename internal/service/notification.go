package service

import (
	"context"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type notificationService struct {
	noteRepo  repository.NotificationRepository
	tokenRepo repository.DeviceTokenRepository
}

func NewNotificationService(
	noteRepo repository.NotificationRepository,
	tokenRepo repository.DeviceTokenRepository,
) NotificationService {
	return &notificationService{
		noteRepo:  noteRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) RegisterDeviceToken(ctx context.Context, userID int32, token, platform string) error {
	if token == "" {
		return &domain.ValidationError{Field: "token", Reason: "token is required"}
	}
	return s.tokenRepo.Register(ctx, &domain.DeviceToken{
		UserID:   userID,
		Token:    token,
		Platform: platform,
	})
}
