package catalog

import (
	"context"
	"errors"
	"strings"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
)

type Service struct {
	repo CatalogRepository
}

func NewService(repo CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.SalonService, error) {
	return s.repo.List(ctx)
}

// Compute maps the selected service ids to a booking-time snapshot and the
// summed duration. Ids not present in the catalog are dropped; rejecting a
// zero-duration selection is the caller's job, since only the caller knows
// whether a booking is actually being attempted.
func (s *Service) Compute(ctx context.Context, ids []string) ([]domain.ServiceSnapshot, int, error) {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		cleaned = append(cleaned, id)
	}

	rows, err := s.repo.GetByIDs(ctx, cleaned)
	if err != nil {
		return nil, 0, err
	}

	chosen := make([]domain.ServiceSnapshot, 0, len(rows))
	total := 0
	for _, r := range rows {
		if r.DurationMin <= 0 {
			continue
		}
		chosen = append(chosen, domain.ServiceSnapshot{
			ID:          r.ID,
			Name:        r.Name,
			DurationMin: r.DurationMin,
		})
		total += r.DurationMin
	}
	return chosen, total, nil
}

func (s *Service) Save(ctx context.Context, svc *domain.SalonService) error {
	svc.ID = strings.TrimSpace(svc.ID)
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.ID == "" || svc.Name == "" || svc.DurationMin <= 0 {
		return ErrValidation
	}
	return s.repo.Upsert(ctx, svc)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
