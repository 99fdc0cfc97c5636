package reservation

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/timegrid"
	"salonbook/internal/repository"
)

const minPhoneDigits = 9

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// Service is the reservation engine: it validates a slot walk against the
// day's grid and delegates the atomic multi-record commits and transitions
// to the Store. Notifications and live events are post-commit side effects
// and never fail an operation.
type Service struct {
	store   Store
	grid    GridResolver
	catalog DurationCalculator
	users   Directory
	notifs  NotificationSender
	events  EventPublisher
	clock   Clock
	loc     *time.Location
	grace   time.Duration
}

func NewService(
	store Store,
	grid GridResolver,
	catalog DurationCalculator,
	users Directory,
	notifs NotificationSender,
	events EventPublisher,
	clock Clock,
	loc *time.Location,
	grace time.Duration,
) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:   store,
		grid:    grid,
		catalog: catalog,
		users:   users,
		notifs:  notifs,
		events:  events,
		clock:   clock,
		loc:     loc,
		grace:   grace,
	}
}

func (s *Service) isPast(date, hour string, now time.Time) bool {
	return timegrid.IsPast(date, hour, now, s.grace, s.loc)
}

// Request books a new pending reservation group for the customer: it
// computes the required contiguous slot run from the selected services and
// commits all records atomically. Occupancy and the one-active-reservation
// rule are re-checked by the store inside the transaction, so a losing
// concurrent request fails with ErrSlotTaken instead of corrupting the
// winner's slots.
func (s *Service) Request(ctx context.Context, customerID int64, req CreateReservationRequest) (*domain.ReservationGroup, error) {
	if customerID <= 0 {
		return nil, ErrNotAuthenticated
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrValidation
	}

	startHour := timegrid.Normalize(req.Hour)
	if startHour == "" {
		return nil, ErrValidation
	}

	chosen, total, err := s.catalog.Compute(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, ErrValidation
	}

	grid, err := s.grid.GridForDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	startIdx := grid.Index(startHour)
	if startIdx < 0 {
		return nil, ErrValidation
	}

	now := s.clock.Now()
	required := (total + grid.Step - 1) / grid.Step

	slots := make([]string, 0, required)
	for i := 0; i < required; i++ {
		if startIdx+i >= len(grid.Hours) {
			return nil, ErrCapacityConflict
		}
		h := grid.Hours[startIdx+i]
		if i > 0 {
			prev := grid.Hours[startIdx+i-1]
			if timegrid.ToMinutes(h)-timegrid.ToMinutes(prev) != grid.Step {
				return nil, ErrCapacityConflict
			}
		}
		if s.isPast(req.Date, h, now) {
			return nil, ErrPastDeadline
		}
		slots = append(slots, h)
	}

	group := &domain.ReservationGroup{
		GroupID:          timegrid.GroupID(req.Date, startHour),
		Date:             req.Date,
		HeadHour:         startHour,
		Slots:            slots,
		CustomerID:       customerID,
		Services:         chosen,
		TotalDurationMin: total,
	}

	if err := s.store.CreateGroup(ctx, group, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrActiveReservation):
			return nil, ErrActiveReservation
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, ErrSlotTaken
		default:
			return nil, err
		}
	}

	if s.notifs != nil && s.users != nil {
		if owner, err := s.users.GetOwner(ctx); err == nil {
			_ = s.notifs.NotifyRequestReceived(ctx, owner.ID, group.GroupID, group.Date, group.HeadHour)
		}
	}
	s.publish(group.Date, group.GroupID, string(domain.RequestPending))

	return group, nil
}

// CancelPending withdraws the customer's own pending request. It is
// idempotent: a second call after the records are already gone succeeds.
func (s *Service) CancelPending(ctx context.Context, customerID int64, groupID string) error {
	if customerID <= 0 {
		return ErrNotAuthenticated
	}

	req, err := s.store.GetRequest(ctx, groupID)
	switch {
	case err == nil:
		if req.CustomerID != customerID {
			return ErrForbidden
		}
		if req.Status != domain.RequestPending {
			return ErrAlreadyDecided
		}
		if s.isPast(req.Date, req.Hour, s.clock.Now()) {
			return ErrPastDeadline
		}
	case errors.Is(err, repository.ErrNotFound):
		// already cancelled; fall through and sweep leftovers
	default:
		return err
	}

	if err := s.store.CancelPending(ctx, customerID, groupID); err != nil {
		switch {
		case errors.Is(err, repository.ErrGroupMismatch):
			return ErrForbidden
		case errors.Is(err, repository.ErrRequestDecided):
			return ErrAlreadyDecided
		default:
			return err
		}
	}

	date := ""
	if req != nil {
		date = req.Date
	}
	s.publish(date, groupID, "cancelled")
	return nil
}

// Approve confirms a pending request. The store re-verifies that the
// request is still pending, that the customer's pointer still references
// this group and that every slot row is intact before flipping all three
// views to approved in one transaction.
func (s *Service) Approve(ctx context.Context, ownerID int64, groupID string) (*domain.ReservationGroup, error) {
	g, err := s.store.Approve(ctx, groupID, ownerID, s.clock.Now())
	if err != nil {
		return nil, mapDecisionErr(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyRequestApproved(ctx, g.CustomerID, g.GroupID, g.Date, g.HeadHour)
	}
	s.publish(g.Date, g.GroupID, string(domain.RequestApproved))
	return g, nil
}

// Reject declines a pending request: slot rows are deleted, the pointer is
// reset so the customer may request again, and the request record is kept
// as audit. No history entry is written.
func (s *Service) Reject(ctx context.Context, ownerID int64, groupID string) (*domain.ReservationGroup, error) {
	g, err := s.store.Reject(ctx, groupID, ownerID, s.clock.Now())
	if err != nil {
		return nil, mapDecisionErr(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyRequestRejected(ctx, g.CustomerID, g.GroupID, g.Date, g.HeadHour)
	}
	s.publish(g.Date, g.GroupID, string(domain.RequestRejected))
	return g, nil
}

// CancelApproved cancels an approved group before its time. Customers may
// only cancel their own group; the owner may cancel any. A cancelled
// history entry is written for customer-linked groups.
func (s *Service) CancelApproved(ctx context.Context, actorID int64, actorRole domain.UserRole, groupID string) error {
	if actorID <= 0 {
		return ErrNotAuthenticated
	}

	head, err := s.store.GetHead(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if head.Status != domain.AppointmentApproved {
		return ErrAlreadyDecided
	}

	now := s.clock.Now()
	if s.isPast(head.Date, head.HeadHour, now) {
		return ErrPastDeadline
	}

	var actor *int64
	if actorRole != domain.RoleOwner {
		actor = &actorID
	}

	if _, err := s.store.CancelApproved(ctx, groupID, actor, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrGroupMismatch):
			return ErrForbidden
		case errors.Is(err, repository.ErrRequestDecided):
			return ErrAlreadyDecided
		default:
			return err
		}
	}

	if s.notifs != nil && head.CustomerID != nil {
		if actorRole == domain.RoleOwner {
			_ = s.notifs.NotifyReservationCancelled(ctx, *head.CustomerID, groupID, head.Date, head.HeadHour)
		} else if s.users != nil {
			if owner, err := s.users.GetOwner(ctx); err == nil {
				_ = s.notifs.NotifyReservationCancelled(ctx, owner.ID, groupID, head.Date, head.HeadHour)
			}
		}
	}
	s.publish(head.Date, groupID, "cancelled")
	return nil
}

// CompleteIfPassed finalizes the customer's active reservation once its
// anchor time lies behind the grace window. It is evaluated
// opportunistically on pointer reads and is a no-op while the reservation
// is still ahead.
func (s *Service) CompleteIfPassed(ctx context.Context, customerID int64) (*domain.HistoryEntry, error) {
	ptr, err := s.store.GetPointer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !ptr.Active() {
		return nil, nil
	}

	now := s.clock.Now()
	if !s.isPast(ptr.Date, ptr.Hour, now) {
		return nil, nil
	}

	hist, err := s.store.CompletePassed(ctx, customerID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.publish(hist.Date, hist.GroupID, string(domain.HistoryCompleted))
	return hist, nil
}

// CreateManual books a single approved slot for a walk-in customer,
// bypassing the pending flow: no pointer, no request record, no multi-slot
// support.
func (s *Service) CreateManual(ctx context.Context, ownerID int64, req ManualAppointmentRequest) (*domain.Appointment, error) {
	hour := timegrid.Normalize(req.Hour)
	name := strings.TrimSpace(req.Name)
	phone := nonDigitRe.ReplaceAllString(req.Phone, "")

	if hour == "" || name == "" {
		return nil, ErrValidation
	}
	if len(phone) < minPhoneDigits {
		return nil, ErrValidation
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrValidation
	}

	grid, err := s.grid.GridForDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if len(grid.Hours) > 0 && grid.Index(hour) < 0 {
		return nil, ErrValidation
	}

	now := s.clock.Now()
	if s.isPast(req.Date, hour, now) {
		return nil, ErrPastDeadline
	}

	a := &domain.Appointment{
		Date:          req.Date,
		Hour:          hour,
		GroupID:       timegrid.GroupID(req.Date, hour),
		IsHead:        true,
		HeadHour:      hour,
		Slots:         []string{hour},
		CustomerName:  name,
		CustomerPhone: phone,
		ServiceLabel:  strings.TrimSpace(req.ServiceLabel),
		Status:        domain.AppointmentApproved,
		Source:        domain.SourceOwnerManual,
		ApprovedAt:    &now,
		ApprovedBy:    &ownerID,
	}
	if err := s.store.CreateManual(ctx, a); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.publish(a.Date, a.GroupID, string(domain.AppointmentApproved))
	return a, nil
}

// MyReservation returns the customer's pointer, first letting an elapsed
// reservation roll over into history.
func (s *Service) MyReservation(ctx context.Context, customerID int64) (*domain.ReservationPointer, error) {
	if customerID <= 0 {
		return nil, ErrNotAuthenticated
	}

	if _, err := s.CompleteIfPassed(ctx, customerID); err != nil {
		return nil, err
	}

	ptr, err := s.store.GetPointer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ptr, nil
}

// DayView renders a date's grid with occupancy. Reservation details are
// only attached to slots owned by the viewer.
func (s *Service) DayView(ctx context.Context, date string, viewerID int64) (*DayViewResponse, error) {
	grid, err := s.grid.GridForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	apps, err := s.store.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	byHour := make(map[string]*domain.Appointment, len(apps))
	for i := range apps {
		byHour[apps[i].Hour] = &apps[i]
	}

	now := s.clock.Now()
	slots := make([]DaySlot, 0, len(grid.Hours))
	for _, h := range grid.Hours {
		slot := DaySlot{
			Hour: h,
			Past: s.isPast(date, h, now),
		}
		if a, ok := byHour[h]; ok && a.Status != domain.AppointmentCompleted {
			slot.Reserved = true
			if viewerID > 0 && a.CustomerID != nil && *a.CustomerID == viewerID {
				slot.Mine = true
				slot.Status = a.Status
				slot.GroupID = a.GroupID
				slot.IsHead = a.IsHead
			}
		}
		slots = append(slots, slot)
	}

	return &DayViewResponse{Date: date, StepMin: grid.Step, Slots: slots}, nil
}

func (s *Service) publish(date, groupID, status string) {
	if s.events != nil {
		s.events.Publish(date, groupID, status)
	}
}

func mapDecisionErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrRequestDecided):
		return ErrAlreadyDecided
	case errors.Is(err, repository.ErrGroupMismatch):
		return ErrAlreadyDecided
	default:
		return err
	}
}
