package service

import (
	"context"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

type notificationService struct {
	notes repository.NotificationRepository
}

func NewNotificationService(notes repository.NotificationRepository) NotificationService {
	return &notificationService{notes: notes}
}

func (s *notificationService) ListNotifications(ctx context.Context, limit int32) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.notes.List(ctx, limit)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string) error {
	return s.notes.MarkAsRead(ctx, id)
}
