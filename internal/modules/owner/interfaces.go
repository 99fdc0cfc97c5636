package owner

import (
	"context"

	"salonbook/internal/domain"
	"salonbook/internal/modules/reservation"
)

// Engine is the slice of the reservation engine the owner surface drives.
type Engine interface {
	Approve(ctx context.Context, ownerID int64, groupID string) (*domain.ReservationGroup, error)
	Reject(ctx context.Context, ownerID int64, groupID string) (*domain.ReservationGroup, error)
	CancelApproved(ctx context.Context, actorID int64, actorRole domain.UserRole, groupID string) error
	CreateManual(ctx context.Context, ownerID int64, req reservation.ManualAppointmentRequest) (*domain.Appointment, error)
}

// RequestLister reads the decision queue and the day's confirmed book.
type RequestLister interface {
	ListPendingRequests(ctx context.Context, date string) ([]domain.ReservationRequest, error)
	ListApprovedByDate(ctx context.Context, date string, headsOnly bool) ([]domain.Appointment, error)
}

// NameResolver maps customer ids to display names for the queue.
type NameResolver interface {
	DisplayName(ctx context.Context, userID int64) (string, error)
}
