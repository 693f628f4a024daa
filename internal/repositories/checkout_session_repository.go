package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"memoria/internal/models/db_models"
)

type CheckoutSessionRepositoryInterface interface {
	CreateSession(ctx context.Context, session *db_models.CheckoutSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*db_models.CheckoutSession, error)
	ActiveForContribution(ctx context.Context, contributionID uuid.UUID, nowUnix int64) (*db_models.CheckoutSession, error)
	ExpireStale(ctx context.Context, contributionID uuid.UUID, nowUnix int64) error
	MarkConsumed(ctx context.Context, sessionID string, outcome db_models.ContributionStatus) (bool, error)
}

func NewCheckoutSessionRepository(db *gorm.DB) CheckoutSessionRepositoryInterface {
	return &CheckoutSessionRepository{db: db}
}

type CheckoutSessionRepository struct {
	db *gorm.DB
}

func (r *CheckoutSessionRepository) CreateSession(ctx context.Context, session *db_models.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *CheckoutSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*db_models.CheckoutSession, error) {

	var session db_models.CheckoutSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &session, nil
}

// ActiveForContribution returns the reusable pending session for a
// contribution, if one exists: not consumed, not expired.
func (r *CheckoutSessionRepository) ActiveForContribution(ctx context.Context, contributionID uuid.UUID, nowUnix int64) (*db_models.CheckoutSession, error) {

	var session db_models.CheckoutSession
	err := r.db.WithContext(ctx).
		Where("contribution_id = ? AND consumed = FALSE AND expires_at > ?", contributionID, nowUnix).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &session, nil
}

// ExpireStale closes out unconsumed sessions that passed their expiry,
// freeing the one-open-session-per-contribution slot for a replacement.
// ConsumedOutcome stays empty so validation can tell an expiry closeout
// apart from a finalized purchase.
func (r *CheckoutSessionRepository) ExpireStale(ctx context.Context, contributionID uuid.UUID, nowUnix int64) error {

	return r.db.WithContext(ctx).Model(&db_models.CheckoutSession{}).
		Where("contribution_id = ? AND consumed = FALSE AND expires_at <= ?", contributionID, nowUnix).
		Update("consumed", true).Error
}

// MarkConsumed flips the consumed flag exactly once. The returned bool is
// false when another caller already consumed the session; the stored outcome
// is then the one to replay.
func (r *CheckoutSessionRepository) MarkConsumed(ctx context.Context, sessionID string, outcome db_models.ContributionStatus) (bool, error) {

	res := r.db.WithContext(ctx).Model(&db_models.CheckoutSession{}).
		Where("session_id = ? AND consumed = FALSE", sessionID).
		Updates(map[string]interface{}{
			"consumed":         true,
			"consumed_outcome": outcome,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
