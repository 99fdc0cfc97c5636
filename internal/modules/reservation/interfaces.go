package reservation

import (
	"context"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/timegrid"
)

// Store is the transactional reservation store. Implementations must make
// each mutating call atomic and re-check its preconditions against live
// data inside the same transaction.
type Store interface {
	CreateGroup(ctx context.Context, g *domain.ReservationGroup, now time.Time) error
	CreateManual(ctx context.Context, a *domain.Appointment) error

	GetPointer(ctx context.Context, customerID int64) (*domain.ReservationPointer, error)
	GetHead(ctx context.Context, groupID string) (*domain.Appointment, error)
	GetRequest(ctx context.Context, groupID string) (*domain.ReservationRequest, error)
	ListByDate(ctx context.Context, date string) ([]domain.Appointment, error)
	ListPendingRequests(ctx context.Context, date string) ([]domain.ReservationRequest, error)
	ListApprovedByDate(ctx context.Context, date string, headsOnly bool) ([]domain.Appointment, error)

	CancelPending(ctx context.Context, customerID int64, groupID string) error
	Approve(ctx context.Context, groupID string, ownerID int64, now time.Time) (*domain.ReservationGroup, error)
	Reject(ctx context.Context, groupID string, ownerID int64, now time.Time) (*domain.ReservationGroup, error)
	CancelApproved(ctx context.Context, groupID string, actorCustomerID *int64, now time.Time) (*domain.HistoryEntry, error)
	CompletePassed(ctx context.Context, customerID int64, now time.Time) (*domain.HistoryEntry, error)
}

// GridResolver supplies a date's resolved slot grid.
type GridResolver interface {
	GridForDate(ctx context.Context, date string) (timegrid.Grid, error)
}

// DurationCalculator maps selected service ids to a snapshot and total
// duration in minutes.
type DurationCalculator interface {
	Compute(ctx context.Context, ids []string) ([]domain.ServiceSnapshot, int, error)
}

// Directory resolves the business owner, for notification targeting.
type Directory interface {
	GetOwner(ctx context.Context) (*domain.User, error)
}

// NotificationSender delivers best-effort notifications; the engine never
// fails or rolls back on its errors.
type NotificationSender interface {
	NotifyRequestReceived(ctx context.Context, ownerID int64, groupID, date, hour string) error
	NotifyRequestApproved(ctx context.Context, customerID int64, groupID, date, hour string) error
	NotifyRequestRejected(ctx context.Context, customerID int64, groupID, date, hour string) error
	NotifyReservationCancelled(ctx context.Context, userID int64, groupID, date, hour string) error
}

// EventPublisher pushes reservation state changes to live subscribers.
type EventPublisher interface {
	Publish(date, groupID, status string)
}

// Clock abstracts wall-clock time for past-deadline checks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }
