package repositories

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"memoria/internal/models/db_models"
)

type CatalogRepositoryInterface interface {
	GetPrice(ctx context.Context, category db_models.PriceCategory, key string) (*db_models.CatalogPrice, error)
	UpsertPrice(ctx context.Context, entry *db_models.CatalogPrice) error
}

func NewCatalogRepository(db *gorm.DB) CatalogRepositoryInterface {
	return &CatalogRepository{db: db}
}

type CatalogRepository struct {
	db *gorm.DB
}

func (r *CatalogRepository) GetPrice(ctx context.Context, category db_models.PriceCategory, key string) (*db_models.CatalogPrice, error) {

	var entry db_models.CatalogPrice
	err := r.db.WithContext(ctx).
		Where("category = ? AND key = ?", category, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &entry, nil
}

// UpsertPrice overwrites unconditionally, last write wins.
func (r *CatalogRepository) UpsertPrice(ctx context.Context, entry *db_models.CatalogPrice) error {

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_in_cents", "updated_at"}),
	}).Create(entry).Error
}
