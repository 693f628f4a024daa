package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"memoria/internal/models/db_models"
)

type GreetingRepositoryInterface interface {
	GetByMemorialID(ctx context.Context, memorialID uuid.UUID) (*db_models.AiGreeting, error)
	Upsert(ctx context.Context, greeting *db_models.AiGreeting) error

	// UpdateIfToken applies updates only while token is still the record's
	// live job token. Returns false when a reset rotated the token out from
	// under the job, in which case the result must be discarded.
	UpdateIfToken(ctx context.Context, memorialID uuid.UUID, token string, updates map[string]interface{}) (bool, error)

	Reset(ctx context.Context, memorialID uuid.UUID, newToken string) error
}

func NewGreetingRepository(db *gorm.DB) GreetingRepositoryInterface {
	return &GreetingRepository{db: db}
}

type GreetingRepository struct {
	db *gorm.DB
}

func (r *GreetingRepository) GetByMemorialID(ctx context.Context, memorialID uuid.UUID) (*db_models.AiGreeting, error) {

	var greeting db_models.AiGreeting
	err := r.db.WithContext(ctx).Where("memorial_id = ?", memorialID).First(&greeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &greeting, nil
}

func (r *GreetingRepository) Upsert(ctx context.Context, greeting *db_models.AiGreeting) error {

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "memorial_id"}},
		UpdateAll: true,
	}).Create(greeting).Error
}

func (r *GreetingRepository) UpdateIfToken(ctx context.Context, memorialID uuid.UUID, token string, updates map[string]interface{}) (bool, error) {

	res := r.db.WithContext(ctx).Model(&db_models.AiGreeting{}).
		Where("memorial_id = ? AND job_token = ?", memorialID, token).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Reset is the hard cutover: clears every artifact path and installs a fresh
// token so late-arriving job results are dropped.
func (r *GreetingRepository) Reset(ctx context.Context, memorialID uuid.UUID, newToken string) error {

	return r.db.WithContext(ctx).Model(&db_models.AiGreeting{}).
		Where("memorial_id = ?", memorialID).
		Updates(map[string]interface{}{
			"audio_path": "",
			"image_path": "",
			"video_path": "",
			"transcript": "",
			"state":      db_models.GreetingStateReady,
			"job_token":  newToken,
		}).Error
}
