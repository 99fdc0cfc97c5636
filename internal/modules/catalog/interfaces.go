package catalog

import (
	"context"

	"salonbook/internal/domain"
)

// CatalogRepository lists only the methods the catalog service uses.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.SalonService, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.SalonService, error)
	Upsert(ctx context.Context, s *domain.SalonService) error
	Delete(ctx context.Context, id string) error
}
