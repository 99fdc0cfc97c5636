package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/timegrid"
)

// ReservationRepository is the transactional store behind the reservation
// engine. Every mutating method runs read-then-write inside one database
// transaction; the unique (date, hour) index on appointments is the last
// line of defense against two groups claiming the same slot.
type ReservationRepository struct {
	db    *gorm.DB
	loc   *time.Location
	grace time.Duration
}

func NewReservationRepository(db *gorm.DB, loc *time.Location, grace time.Duration) *ReservationRepository {
	return &ReservationRepository{db: db, loc: loc, grace: grace}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// modernc sqlite reports constraint violations by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateGroup commits a new pending reservation group: one appointment row
// per slot, the customer's pointer and the owner-facing request record,
// all or nothing. Occupancy and the one-active-reservation rule are
// re-checked inside the transaction, not trusted from the caller's reads.
func (r *ReservationRepository) CreateGroup(ctx context.Context, g *domain.ReservationGroup, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ptr domain.ReservationPointer
		err := tx.First(&ptr, "customer_id = ?", g.CustomerID).Error
		if err == nil && ptr.Active() {
			return ErrActiveReservation
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// The pointer's primary key doubles as the per-customer lock.
		// The guarded delete clears only a non-active pointer; when a
		// concurrent request claims the row first, the insert below
		// conflicts and this transaction loses.
		if err := tx.Where("customer_id = ? AND (group_id = '' OR status = ?)",
			g.CustomerID, domain.ReservationRejected).
			Delete(&domain.ReservationPointer{}).Error; err != nil {
			return err
		}
		ptrRow := domain.ReservationPointer{
			CustomerID:       g.CustomerID,
			GroupID:          g.GroupID,
			Date:             g.Date,
			Hour:             g.HeadHour,
			Slots:            g.Slots,
			Services:         g.Services,
			TotalDurationMin: g.TotalDurationMin,
			Status:           domain.ReservationPending,
			RequestedAt:      now,
		}
		if err := tx.Create(&ptrRow).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrActiveReservation
			}
			return err
		}

		var cnt int64
		if err := tx.Model(&domain.Appointment{}).
			Where("date = ? AND hour IN ?", g.Date, g.Slots).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrSlotTaken
		}

		for i, h := range g.Slots {
			requestedAt := now
			a := domain.Appointment{
				Date:             g.Date,
				Hour:             h,
				GroupID:          g.GroupID,
				IsHead:           i == 0,
				HeadHour:         g.HeadHour,
				Slots:            g.Slots,
				CustomerID:       &g.CustomerID,
				Services:         g.Services,
				TotalDurationMin: g.TotalDurationMin,
				Status:           domain.AppointmentPending,
				Source:           domain.SourceCustomerRequest,
				RequestedAt:      &requestedAt,
			}
			if err := tx.Create(&a).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrSlotTaken
				}
				return err
			}
		}

		req := domain.ReservationRequest{
			GroupID:          g.GroupID,
			Date:             g.Date,
			Hour:             g.HeadHour,
			CustomerID:       g.CustomerID,
			Slots:            g.Slots,
			Services:         g.Services,
			TotalDurationMin: g.TotalDurationMin,
			Status:           domain.RequestPending,
		}
		// A decided request for this slot can still sit in the audit
		// table under the same group id; the new request replaces it.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}},
			UpdateAll: true,
		}).Create(&req).Error
	})
}

// CreateManual inserts a single approved walk-in appointment with no
// pointer and no request record.
func (r *ReservationRepository) CreateManual(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&domain.Appointment{}).
			Where("date = ? AND hour = ?", a.Date, a.Hour).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrSlotTaken
		}
		if err := tx.Create(a).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
}

func (r *ReservationRepository) GetPointer(ctx context.Context, customerID int64) (*domain.ReservationPointer, error) {
	var ptr domain.ReservationPointer
	tx := r.db.WithContext(ctx).First(&ptr, "customer_id = ?", customerID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &ptr, nil
}

func (r *ReservationRepository) GetHead(ctx context.Context, groupID string) (*domain.Appointment, error) {
	var a domain.Appointment
	tx := r.db.WithContext(ctx).Where("group_id = ? AND is_head = ?", groupID, true).First(&a)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &a, nil
}

func (r *ReservationRepository) GetRequest(ctx context.Context, groupID string) (*domain.ReservationRequest, error) {
	var req domain.ReservationRequest
	tx := r.db.WithContext(ctx).First(&req, "group_id = ?", groupID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &req, nil
}

func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	tx := r.db.WithContext(ctx).Where("date = ?", date).Order("hour").Find(&rows)
	return rows, tx.Error
}

// ListPendingRequests returns the decision queue, optionally narrowed to
// one date.
func (r *ReservationRepository) ListPendingRequests(ctx context.Context, date string) ([]domain.ReservationRequest, error) {
	q := r.db.WithContext(ctx).Where("status = ?", domain.RequestPending)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	var rows []domain.ReservationRequest
	tx := q.Order("date, hour").Find(&rows)
	return rows, tx.Error
}

func (r *ReservationRepository) ListApprovedByDate(ctx context.Context, date string, headsOnly bool) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Where("date = ? AND status = ?", date, domain.AppointmentApproved)
	if headsOnly {
		q = q.Where("is_head = ?", true)
	}
	var rows []domain.Appointment
	tx := q.Order("hour").Find(&rows)
	return rows, tx.Error
}

// CancelPending removes a customer's own pending group. It is idempotent
// against partially-completed prior attempts: it filters live records by
// current status and group membership instead of assuming they exist.
func (r *ReservationRepository) CancelPending(ctx context.Context, customerID int64, groupID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req domain.ReservationRequest
		err := tx.First(&req, "group_id = ?", groupID).Error
		switch {
		case err == nil:
			if req.CustomerID != customerID {
				return ErrGroupMismatch
			}
			if req.Status != domain.RequestPending {
				return ErrRequestDecided
			}
			if err := tx.Delete(&req).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// already cancelled, keep going so leftovers get swept
		default:
			return err
		}

		if err := tx.Where("group_id = ? AND customer_id = ? AND status = ?",
			groupID, customerID, domain.AppointmentPending).
			Delete(&domain.Appointment{}).Error; err != nil {
			return err
		}

		var ptr domain.ReservationPointer
		err = tx.First(&ptr, "customer_id = ?", customerID).Error
		if err == nil && ptr.GroupID == groupID {
			return tx.Delete(&ptr).Error
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
}

// Approve flips every per-slot record, the pointer and the request to
// approved, verifying first that the request is still actionable: still
// pending, still the customer's active group, every slot row still present
// and still pending.
func (r *ReservationRepository) Approve(ctx context.Context, groupID string, ownerID int64, now time.Time) (*domain.ReservationGroup, error) {
	var g *domain.ReservationGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req domain.ReservationRequest
		if err := tx.First(&req, "group_id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Status != domain.RequestPending {
			return ErrRequestDecided
		}

		var ptr domain.ReservationPointer
		if err := tx.First(&ptr, "customer_id = ?", req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupMismatch
			}
			return err
		}
		if ptr.GroupID != groupID {
			return ErrGroupMismatch
		}

		var rows []domain.Appointment
		if err := tx.Where("group_id = ?", groupID).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) != len(req.Slots) {
			return ErrGroupMismatch
		}
		for _, row := range rows {
			if row.Status != domain.AppointmentPending {
				return ErrRequestDecided
			}
			if row.CustomerID == nil || *row.CustomerID != req.CustomerID {
				return ErrGroupMismatch
			}
		}

		if err := tx.Model(&domain.Appointment{}).
			Where("group_id = ?", groupID).
			Updates(map[string]any{
				"status":      domain.AppointmentApproved,
				"approved_at": now,
				"approved_by": ownerID,
				"source":      domain.SourceRequestApproved,
			}).Error; err != nil {
			return err
		}

		ptr.Status = domain.ReservationApproved
		ptr.ApprovedAt = &now
		if err := tx.Save(&ptr).Error; err != nil {
			return err
		}

		req.Status = domain.RequestApproved
		req.DecidedAt = &now
		req.DecidedBy = &ownerID
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		g = requestGroup(&req)
		return nil
	})
	return g, err
}

// Reject marks the request rejected (kept as audit), deletes the group's
// still-pending slot rows and resets the pointer to its cleared rejected
// state so the customer may request again. No history entry is written.
func (r *ReservationRepository) Reject(ctx context.Context, groupID string, ownerID int64, now time.Time) (*domain.ReservationGroup, error) {
	var g *domain.ReservationGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req domain.ReservationRequest
		if err := tx.First(&req, "group_id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Status != domain.RequestPending {
			return ErrRequestDecided
		}

		req.Status = domain.RequestRejected
		req.DecidedAt = &now
		req.DecidedBy = &ownerID
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		if err := tx.Where("group_id = ? AND status = ?", groupID, domain.AppointmentPending).
			Delete(&domain.Appointment{}).Error; err != nil {
			return err
		}

		var ptr domain.ReservationPointer
		err := tx.First(&ptr, "customer_id = ?", req.CustomerID).Error
		if err == nil && ptr.GroupID == groupID {
			ptr.GroupID = ""
			ptr.Date = ""
			ptr.Hour = ""
			ptr.Slots = nil
			ptr.Services = nil
			ptr.TotalDurationMin = 0
			ptr.Status = domain.ReservationRejected
			ptr.RejectedAt = &now
			if err := tx.Save(&ptr).Error; err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		g = requestGroup(&req)
		return nil
	})
	return g, err
}

// CancelApproved deletes the group's live slot rows that have not already
// passed, clears the pointer if it still references the group, and writes
// a cancelled history entry carrying the reservation snapshot. Owner-manual
// appointments have no customer, no pointer and therefore no history row;
// for those the returned entry is nil. actorCustomerID, when set, must own
// the group.
func (r *ReservationRepository) CancelApproved(ctx context.Context, groupID string, actorCustomerID *int64, now time.Time) (*domain.HistoryEntry, error) {
	var hist *domain.HistoryEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var head domain.Appointment
		if err := tx.Where("group_id = ? AND is_head = ?", groupID, true).First(&head).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if head.Status != domain.AppointmentApproved {
			return ErrRequestDecided
		}
		if actorCustomerID != nil && (head.CustomerID == nil || *head.CustomerID != *actorCustomerID) {
			return ErrGroupMismatch
		}

		var rows []domain.Appointment
		if err := tx.Where("group_id = ?", groupID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			if timegrid.IsPast(row.Date, row.Hour, now, r.grace, r.loc) {
				continue
			}
			if err := tx.Delete(&domain.Appointment{}, row.ID).Error; err != nil {
				return err
			}
		}

		if head.CustomerID == nil {
			return nil
		}
		customerID := *head.CustomerID

		h := domain.HistoryEntry{
			GroupID:          groupID,
			CustomerID:       customerID,
			Date:             head.Date,
			Hour:             head.HeadHour,
			Slots:            head.Slots,
			Services:         head.Services,
			TotalDurationMin: head.TotalDurationMin,
			Status:           domain.HistoryCancelled,
			CancelledAt:      &now,
		}

		var ptr domain.ReservationPointer
		err := tx.First(&ptr, "customer_id = ?", customerID).Error
		if err == nil && ptr.GroupID == groupID {
			// the pointer snapshot is authoritative when it still matches
			h.Slots = ptr.Slots
			h.Services = ptr.Services
			h.TotalDurationMin = ptr.TotalDurationMin
			if err := tx.Delete(&ptr).Error; err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		hist = &h
		return nil
	})
	return hist, err
}

// CompletePassed finalizes the customer's active group once its time has
// passed: the group's rows flip to completed, a completed history entry is
// written from the pointer snapshot and the pointer is deleted.
func (r *ReservationRepository) CompletePassed(ctx context.Context, customerID int64, now time.Time) (*domain.HistoryEntry, error) {
	var hist *domain.HistoryEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ptr domain.ReservationPointer
		if err := tx.First(&ptr, "customer_id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !ptr.Active() {
			return ErrNotFound
		}

		if err := tx.Model(&domain.Appointment{}).
			Where("group_id = ?", ptr.GroupID).
			Updates(map[string]any{
				"status":       domain.AppointmentCompleted,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		h := domain.HistoryEntry{
			GroupID:          ptr.GroupID,
			CustomerID:       customerID,
			Date:             ptr.Date,
			Hour:             ptr.Hour,
			Slots:            ptr.Slots,
			Services:         ptr.Services,
			TotalDurationMin: ptr.TotalDurationMin,
			Status:           domain.HistoryCompleted,
			CompletedAt:      &now,
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ptr).Error; err != nil {
			return err
		}
		hist = &h
		return nil
	})
	return hist, err
}

func (r *ReservationRepository) ListHistoryByCustomer(ctx context.Context, customerID int64) ([]domain.HistoryEntry, error) {
	var rows []domain.HistoryEntry
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&rows)
	return rows, tx.Error
}

func (r *ReservationRepository) ListHistoryRange(ctx context.Context, from, to string) ([]domain.HistoryEntry, error) {
	var rows []domain.HistoryEntry
	tx := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC, hour DESC").Find(&rows)
	return rows, tx.Error
}

func requestGroup(req *domain.ReservationRequest) *domain.ReservationGroup {
	return &domain.ReservationGroup{
		GroupID:          req.GroupID,
		Date:             req.Date,
		HeadHour:         req.Hour,
		Slots:            req.Slots,
		CustomerID:       req.CustomerID,
		Services:         req.Services,
		TotalDurationMin: req.TotalDurationMin,
	}
}
