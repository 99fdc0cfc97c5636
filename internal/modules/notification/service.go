package notification

import (
	"context"
	"fmt"
	"time"

	"salonbook/internal/domain"
)

// Service stores in-app notifications and implements the sender interface
// the reservation engine calls after commit.
type Service struct {
	repo NotificationRepositoryInterface
}

func NewService(repo NotificationRepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID, time.Now())
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID, time.Now())
}

func (s *Service) NotifyRequestReceived(ctx context.Context, ownerID int64, groupID, date, hour string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  ownerID,
		Type:    domain.NotifyRequestReceived,
		Title:   "New reservation request",
		Message: fmt.Sprintf("A customer requested %s at %s", date, hour),
		GroupID: groupID,
		Date:    date,
		Hour:    hour,
	})
}

func (s *Service) NotifyRequestApproved(ctx context.Context, customerID int64, groupID, date, hour string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  customerID,
		Type:    domain.NotifyRequestApproved,
		Title:   "Reservation confirmed",
		Message: fmt.Sprintf("Your reservation for %s at %s was approved", date, hour),
		GroupID: groupID,
		Date:    date,
		Hour:    hour,
	})
}

func (s *Service) NotifyRequestRejected(ctx context.Context, customerID int64, groupID, date, hour string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  customerID,
		Type:    domain.NotifyRequestRejected,
		Title:   "Reservation declined",
		Message: fmt.Sprintf("Your request for %s at %s was declined", date, hour),
		GroupID: groupID,
		Date:    date,
		Hour:    hour,
	})
}

func (s *Service) NotifyReservationCancelled(ctx context.Context, userID int64, groupID, date, hour string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifyReservationCancelled,
		Title:   "Reservation cancelled",
		Message: fmt.Sprintf("The appointment on %s at %s was cancelled", date, hour),
		GroupID: groupID,
		Date:    date,
		Hour:    hour,
	})
}
