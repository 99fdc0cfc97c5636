package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salonbook/internal/domain"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.SalonService, error) {
	var rows []domain.SalonService
	tx := r.db.WithContext(ctx).Order("position, id").Find(&rows)
	return rows, tx.Error
}

func (r *CatalogRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.SalonService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []domain.SalonService
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Order("position, id").Find(&rows)
	return rows, tx.Error
}

func (r *CatalogRepository) Upsert(ctx context.Context, s *domain.SalonService) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(s).Error
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&domain.SalonService{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.SalonService, error) {
	var s domain.SalonService
	tx := r.db.WithContext(ctx).First(&s, "id = ?", id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &s, nil
}
