package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"memoria/internal/models/db_models"
	"memoria/internal/models/response_models"
	"memoria/internal/repositories"
	"memoria/pkg/utils"
)

type PublishConfig struct {
	// SessionTTL bounds how long a pending checkout session is reusable.
	SessionTTL time.Duration

	// EditRedirectURL is where an unpaid/expired checkout sends the user.
	EditRedirectURL string
	// LandingRedirectURL is the neutral page for finished or rejected
	// validations; it deliberately reveals nothing about which check failed.
	LandingRedirectURL string
}

type PublishServiceInterface interface {
	Publish(ctx context.Context, contributionID uuid.UUID) (*response_models.PublishResponse, error)
	ValidatePurchase(ctx context.Context, contributionID uuid.UUID, sessionID string) (*response_models.PurchaseResultResponse, error)
}

type PublishService struct {
	contributionRepo repositories.ContributionRepositoryInterface
	sessionRepo      repositories.CheckoutSessionRepositoryInterface
	pricing          PricingServiceInterface
	gateway          PaymentGateway
	approver         AutoApprover
	cfg              PublishConfig

	now func() time.Time
}

func NewPublishService(
	contributionRepo repositories.ContributionRepositoryInterface,
	sessionRepo repositories.CheckoutSessionRepositoryInterface,
	pricing PricingServiceInterface,
	gateway PaymentGateway,
	approver AutoApprover,
	cfg PublishConfig,
) PublishServiceInterface {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	return &PublishService{
		contributionRepo: contributionRepo,
		sessionRepo:      sessionRepo,
		pricing:          pricing,
		gateway:          gateway,
		approver:         approver,
		cfg:              cfg,
		now:              time.Now,
	}
}

// Publish drives a draft contribution toward published/in-review. Free
// contributions finalize immediately; paid ones get a checkout redirect and
// stay draft until the purchase is validated, so an abandoned checkout
// leaves nothing to clean up.
func (s *PublishService) Publish(ctx context.Context, contributionID uuid.UUID) (*response_models.PublishResponse, error) {

	contribution, err := s.contributionRepo.GetContributionByID(ctx, contributionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if contribution == nil {
		return nil, utils.ErrNotFound
	}
	if !contribution.IsDraft() {
		return nil, utils.ErrInvalidState
	}

	totalCents, err := s.pricing.TotalForContribution(ctx, contribution)
	if err != nil {
		return nil, err
	}

	if totalCents == 0 {
		status := s.decideStatus(ctx, contribution)
		if err := s.contributionRepo.TransitionFromDraft(ctx, contribution.ID, status); err != nil {
			if errors.Is(err, utils.ErrInvalidState) {
				return nil, utils.ErrInvalidState
			}
			return nil, utils.ErrDatabaseError
		}
		return &response_models.PublishResponse{Status: string(status)}, nil
	}

	nowUnix := s.now().Unix()

	// A second publish before payment completes must not create a second
	// chargeable session.
	if existing, err := s.sessionRepo.ActiveForContribution(ctx, contribution.ID, nowUnix); err == nil && existing != nil {
		return &response_models.PublishResponse{
			Status:     response_models.PublishStatusNeedsPayment,
			PaymentURL: existing.PaymentURL,
			SessionID:  existing.SessionID,
			AmountDue:  existing.AmountInCents,
		}, nil
	} else if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Close out any expired pending session first; only one unconsumed row
	// may exist per contribution, and a stale one would block the insert.
	if err := s.sessionRepo.ExpireStale(ctx, contribution.ID, nowUnix); err != nil {
		return nil, utils.ErrDatabaseError
	}

	created, err := s.gateway.CreateSession(ctx, totalCents, SessionMetadata{
		ContributionID:   contribution.ID.String(),
		ContributionType: string(contribution.Kind),
	})
	if err != nil {
		log.Printf("publish: gateway session creation failed for %s: %v", contribution.ID, err)
		return nil, utils.ErrGatewayUnavailable
	}

	metadata := created.ProviderPayload
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	ref := &db_models.CheckoutSession{
		ContributionID: contribution.ID,
		SessionID:      created.SessionID,
		OrderCode:      created.OrderCode,
		OrderRef:       created.OrderRef,
		AmountInCents:  totalCents, // price snapshot; never re-derived at validation
		PaymentURL:     created.PaymentURL,
		ExpiresAt:      nowUnix + int64(s.cfg.SessionTTL.Seconds()),
		Metadata:       datatypes.JSON(metadata),
	}

	if err := s.sessionRepo.CreateSession(ctx, ref); err != nil {
		// A concurrent publish raced us to the one open session per
		// contribution; reuse the winner's so only one chargeable checkout
		// is ever handed out. Our own link is orphaned, never shown to
		// anyone, and expires on the provider side.
		if existing, err2 := s.sessionRepo.ActiveForContribution(ctx, contribution.ID, nowUnix); err2 == nil && existing != nil {
			log.Printf("publish: discarding orphaned checkout %s for %s, reusing %s",
				created.OrderRef, contribution.ID, existing.SessionID)
			return &response_models.PublishResponse{
				Status:     response_models.PublishStatusNeedsPayment,
				PaymentURL: existing.PaymentURL,
				SessionID:  existing.SessionID,
				AmountDue:  existing.AmountInCents,
			}, nil
		}
		return nil, utils.ErrDatabaseError
	}

	return &response_models.PublishResponse{
		Status:     response_models.PublishStatusNeedsPayment,
		PaymentURL: created.PaymentURL,
		SessionID:  created.SessionID,
		AmountDue:  totalCents,
	}, nil
}

// ValidatePurchase finalizes a contribution on return from checkout. Safe to
// call repeatedly with the same arguments: a consumed session replays its
// stored outcome without touching the contribution again.
func (s *PublishService) ValidatePurchase(ctx context.Context, contributionID uuid.UUID, sessionID string) (*response_models.PurchaseResultResponse, error) {

	ref, err := s.sessionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Fail closed on any correlation mismatch. A spoofed session id must
	// never finalize someone else's contribution.
	if ref == nil || ref.ContributionID != contributionID {
		log.Printf("%v: contribution=%s session=%s", utils.ErrValidationMismatch, contributionID, sessionID)
		return &response_models.PurchaseResultResponse{
			Success:     false,
			RedirectURL: s.cfg.LandingRedirectURL,
		}, nil
	}

	if ref.Consumed {
		// A session closed out by expiry never finalized anything; send the
		// author back to editing instead of replaying a success.
		if ref.ExpiredCloseout() {
			return &response_models.PurchaseResultResponse{
				Success:     false,
				RedirectURL: s.cfg.EditRedirectURL,
			}, nil
		}
		return &response_models.PurchaseResultResponse{
			Success:     true,
			Status:      string(ref.ConsumedOutcome),
			RedirectURL: s.cfg.LandingRedirectURL,
		}, nil
	}

	status, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		log.Printf("purchase validation: gateway query failed for %s: %v", sessionID, err)
		return nil, utils.ErrGatewayUnavailable
	}

	if status != GatewayStatusPaid {
		return &response_models.PurchaseResultResponse{
			Success:     false,
			RedirectURL: s.cfg.EditRedirectURL,
		}, nil
	}

	contribution, err := s.contributionRepo.GetContributionByID(ctx, ref.ContributionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if contribution == nil {
		return nil, utils.ErrNotFound
	}

	outcome := contribution.Status
	if contribution.IsDraft() {
		outcome = s.decideStatus(ctx, contribution)
		if err := s.contributionRepo.TransitionFromDraft(ctx, contribution.ID, outcome); err != nil {
			if !errors.Is(err, utils.ErrInvalidState) {
				return nil, utils.ErrDatabaseError
			}
			// Lost the race to a concurrent validation; report whatever
			// state the winner left behind.
			current, err2 := s.contributionRepo.GetContributionByID(ctx, contribution.ID)
			if err2 != nil || current == nil {
				return nil, utils.ErrDatabaseError
			}
			outcome = current.Status
		}
	}

	applied, err := s.sessionRepo.MarkConsumed(ctx, sessionID, outcome)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !applied {
		// Another return-trip consumed it first; replay its outcome.
		if latest, err2 := s.sessionRepo.GetBySessionID(ctx, sessionID); err2 == nil && latest != nil {
			outcome = latest.ConsumedOutcome
		}
	}

	return &response_models.PurchaseResultResponse{
		Success:     true,
		Status:      string(outcome),
		RedirectURL: s.cfg.LandingRedirectURL,
	}, nil
}

// decideStatus runs the moderation check, failing toward manual review.
func (s *PublishService) decideStatus(ctx context.Context, contribution *db_models.Contribution) db_models.ContributionStatus {

	approved, err := s.approver.ShouldAutoApprove(ctx, contribution)
	if err != nil {
		log.Printf("moderation check failed for %s, sending to review: %v", contribution.ID, err)
		return db_models.StatusInReview
	}
	if approved {
		return db_models.StatusPublished
	}
	return db_models.StatusInReview
}
