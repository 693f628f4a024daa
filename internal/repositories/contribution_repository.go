package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"memoria/internal/models/db_models"
	"memoria/pkg/utils"
)

type ContributionRepositoryInterface interface {
	CreateContribution(ctx context.Context, contribution *db_models.Contribution) error
	GetContributionByID(ctx context.Context, id uuid.UUID) (*db_models.Contribution, error)
	UpdateDraft(ctx context.Context, contribution *db_models.Contribution) error
	ListByMemorial(ctx context.Context, slug string, page int, pageSize int) ([]db_models.Contribution, error)
	TransitionFromDraft(ctx context.Context, id uuid.UUID, to db_models.ContributionStatus) error
}

func NewContributionRepository(db *gorm.DB) ContributionRepositoryInterface {
	return &ContributionRepository{db: db}
}

type ContributionRepository struct {
	db *gorm.DB
}

func (r *ContributionRepository) CreateContribution(ctx context.Context, contribution *db_models.Contribution) error {
	return r.db.WithContext(ctx).Create(contribution).Error
}

func (r *ContributionRepository) GetContributionByID(ctx context.Context, id uuid.UUID) (*db_models.Contribution, error) {

	var contribution db_models.Contribution
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&contribution).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &contribution, nil
}

// UpdateDraft writes variant fields only while the row is still a draft.
func (r *ContributionRepository) UpdateDraft(ctx context.Context, contribution *db_models.Contribution) error {

	res := r.db.WithContext(ctx).Model(&db_models.Contribution{}).
		Where("id = ? AND status = ?", contribution.ID, db_models.StatusDraft).
		Updates(map[string]interface{}{
			"asset_path":       contribution.AssetPath,
			"asset_decoration": contribution.AssetDecoration,
			"decoration":       contribution.Decoration,
			"content":          contribution.Content,
			"wreath_tier":      contribution.WreathTier,
			"donation_count":   contribution.DonationCount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrInvalidState
	}
	return nil
}

func (r *ContributionRepository) ListByMemorial(ctx context.Context, slug string, page int, pageSize int) ([]db_models.Contribution, error) {

	var contributions []db_models.Contribution
	err := r.db.WithContext(ctx).
		Where("memorial_slug = ?", slug).
		Order("created_at DESC").
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

// TransitionFromDraft is the single-writer compare-and-swap out of draft.
// Two concurrent callers get at most one applied transition; the loser sees
// ErrInvalidState and must re-read current state.
func (r *ContributionRepository) TransitionFromDraft(ctx context.Context, id uuid.UUID, to db_models.ContributionStatus) error {

	res := r.db.WithContext(ctx).Model(&db_models.Contribution{}).
		Where("id = ? AND status = ?", id, db_models.StatusDraft).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrInvalidState
	}
	return nil
}
