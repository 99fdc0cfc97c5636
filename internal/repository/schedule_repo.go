package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salonbook/internal/domain"
)

const settingsRowID = 1

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetDefaultHours returns the business-wide slot list; a missing settings
// row reads as an empty schedule.
func (r *ScheduleRepository) GetDefaultHours(ctx context.Context) ([]string, error) {
	var s domain.BusinessSettings
	tx := r.db.WithContext(ctx).First(&s, settingsRowID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return s.DefaultHours, nil
}

func (r *ScheduleRepository) SaveDefaultHours(ctx context.Context, hours []string) error {
	s := domain.BusinessSettings{ID: settingsRowID, DefaultHours: hours}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&s).Error
}

// GetOverride returns the date's override row, or ErrNotFound when the
// default schedule applies. An existing row with zero hours is a closed day.
func (r *ScheduleRepository) GetOverride(ctx context.Context, date string) (*domain.DayOverride, error) {
	var o domain.DayOverride
	tx := r.db.WithContext(ctx).First(&o, "date = ?", date)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &o, nil
}

func (r *ScheduleRepository) SaveOverride(ctx context.Context, o *domain.DayOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(o).Error
}

func (r *ScheduleRepository) DeleteOverride(ctx context.Context, date string) error {
	return r.db.WithContext(ctx).Delete(&domain.DayOverride{}, "date = ?", date).Error
}

// ListOverrides returns override rows in a date range, for calendar views.
func (r *ScheduleRepository) ListOverrides(ctx context.Context, from, to string) ([]domain.DayOverride, error) {
	var rows []domain.DayOverride
	tx := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date").Find(&rows)
	return rows, tx.Error
}
