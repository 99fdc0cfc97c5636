package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
)

type fakeCatalogRepo struct {
	services map[string]domain.SalonService
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: make(map[string]domain.SalonService)}
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]domain.SalonService, error) {
	var out []domain.SalonService
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, ids []string) ([]domain.SalonService, error) {
	var out []domain.SalonService
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) Upsert(_ context.Context, s *domain.SalonService) error {
	f.services[s.ID] = *s
	return nil
}

func (f *fakeCatalogRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.services, id)
	return nil
}

func seeded() *fakeCatalogRepo {
	repo := newFakeCatalogRepo()
	repo.services["cut"] = domain.SalonService{ID: "cut", Name: "Haircut", DurationMin: 60}
	repo.services["color"] = domain.SalonService{ID: "color", Name: "Coloring", DurationMin: 90}
	repo.services["broken"] = domain.SalonService{ID: "broken", Name: "Broken", DurationMin: 0}
	return repo
}

func TestCompute(t *testing.T) {
	svc := NewService(seeded())
	ctx := context.Background()

	snaps, total, err := svc.Compute(ctx, []string{"cut", "color"})
	require.NoError(t, err)
	assert.Equal(t, 150, total)
	require.Len(t, snaps, 2)
	assert.Equal(t, "Haircut", snaps[0].Name)

	// duplicates and whitespace are cleaned up
	snaps, total, err = svc.Compute(ctx, []string{" cut ", "cut", "cut"})
	require.NoError(t, err)
	assert.Equal(t, 60, total)
	assert.Len(t, snaps, 1)

	// unknown ids and zero-duration rows are dropped, not errors
	snaps, total, err = svc.Compute(ctx, []string{"nope", "broken"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, snaps)

	snaps, total, err = svc.Compute(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, snaps)
}

func TestSave(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Save(ctx, &domain.SalonService{ID: " manicure ", Name: " Manicure ", DurationMin: 45})
	require.NoError(t, err)
	saved, ok := repo.services["manicure"]
	require.True(t, ok)
	assert.Equal(t, "Manicure", saved.Name)

	assert.ErrorIs(t, svc.Save(ctx, &domain.SalonService{ID: "", Name: "X", DurationMin: 30}), ErrValidation)
	assert.ErrorIs(t, svc.Save(ctx, &domain.SalonService{ID: "x", Name: "X", DurationMin: 0}), ErrValidation)
}

func TestDelete(t *testing.T) {
	svc := NewService(seeded())
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "cut"))
	assert.ErrorIs(t, svc.Delete(ctx, "cut"), ErrNotFound)
}
