package schedule

import (
	"context"

	"salonbook/internal/domain"
)

// ScheduleRepository lists only the methods the schedule service uses.
type ScheduleRepository interface {
	GetDefaultHours(ctx context.Context) ([]string, error)
	SaveDefaultHours(ctx context.Context, hours []string) error
	GetOverride(ctx context.Context, date string) (*domain.DayOverride, error)
	SaveOverride(ctx context.Context, o *domain.DayOverride) error
	DeleteOverride(ctx context.Context, date string) error
	ListOverrides(ctx context.Context, from, to string) ([]domain.DayOverride, error)
}
