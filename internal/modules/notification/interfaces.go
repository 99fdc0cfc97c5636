package notification

import (
	"context"
	"time"

	"salonbook/internal/domain"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64, now time.Time) error
	MarkAllRead(ctx context.Context, userID int64, now time.Time) error
}
