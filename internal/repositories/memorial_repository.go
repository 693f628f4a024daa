package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"memoria/internal/models/db_models"
)

type MemorialRepositoryInterface interface {
	GetBySlug(ctx context.Context, slug string) (*db_models.Memorial, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Memorial, error)
	NearestPhoto(ctx context.Context, memorialID uuid.UUID, vector pgvector.Vector) (*db_models.MemorialPhoto, error)
}

func NewMemorialRepository(db *gorm.DB) MemorialRepositoryInterface {
	return &MemorialRepository{db: db}
}

type MemorialRepository struct {
	db *gorm.DB
}

func (r *MemorialRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Memorial, error) {

	var memorial db_models.Memorial
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&memorial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &memorial, nil
}

func (r *MemorialRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Memorial, error) {

	var memorial db_models.Memorial
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&memorial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &memorial, nil
}

// NearestPhoto ranks the memorial's gallery by cosine distance to the query
// vector and returns the closest match above a floor similarity.
func (r *MemorialRepository) NearestPhoto(ctx context.Context, memorialID uuid.UUID, vector pgvector.Vector) (*db_models.MemorialPhoto, error) {

	var results []db_models.MemorialPhoto

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM memorial_photos
        WHERE memorial_id = $2
          AND (1 - (embedding <=> $1)) > 0.5
        ORDER BY embedding <=> $1
        LIMIT 1
    `

	err := r.db.WithContext(ctx).Raw(query, vecStr, memorialID).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
