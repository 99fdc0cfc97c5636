package schedule

import (
	"context"
	"errors"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/timegrid"
	"salonbook/internal/repository"
)

type Service struct {
	repo ScheduleRepository
}

func NewService(repo ScheduleRepository) *Service {
	return &Service{repo: repo}
}

// GridForDate resolves a date's bookable slot grid. A per-date override
// replaces the default list entirely, including the empty list (closed
// day); without one the business default applies.
func (s *Service) GridForDate(ctx context.Context, date string) (timegrid.Grid, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return timegrid.Grid{}, ErrValidation
	}

	o, err := s.repo.GetOverride(ctx, date)
	switch {
	case err == nil:
		hours := timegrid.UniqSorted(o.Hours)
		return timegrid.Grid{Hours: hours, Step: timegrid.StepMin(hours)}, nil
	case errors.Is(err, repository.ErrNotFound):
		defaults, err := s.repo.GetDefaultHours(ctx)
		if err != nil {
			return timegrid.Grid{}, err
		}
		hours := timegrid.UniqSorted(defaults)
		return timegrid.Grid{Hours: hours, Step: timegrid.StepMin(hours)}, nil
	default:
		return timegrid.Grid{}, err
	}
}

func (s *Service) SaveDefaultHours(ctx context.Context, hours []string) ([]string, error) {
	normalized := timegrid.UniqSorted(hours)
	if err := s.repo.SaveDefaultHours(ctx, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// SaveOverride stores a date-specific slot list. An empty list is valid
// and means the salon is closed that day.
func (s *Service) SaveOverride(ctx context.Context, date string, hours []string) ([]string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrValidation
	}
	normalized := timegrid.UniqSorted(hours)
	o := &domain.DayOverride{Date: date, Hours: normalized}
	if err := s.repo.SaveOverride(ctx, o); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *Service) ClearOverride(ctx context.Context, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrValidation
	}
	return s.repo.DeleteOverride(ctx, date)
}

func (s *Service) ListOverrides(ctx context.Context, from, to string) ([]domain.DayOverride, error) {
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return nil, ErrValidation
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return nil, ErrValidation
	}
	return s.repo.ListOverrides(ctx, from, to)
}
