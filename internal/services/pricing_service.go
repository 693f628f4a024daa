package services

import (
	"context"
	"log"
	"memoria/internal/models/db_models"
	"memoria/internal/repositories"
	"memoria/pkg/utils"
)

// DonationUnitPriceCents is the fixed price of one donation add-on unit.
const DonationUnitPriceCents int64 = 500

type PricingConfig struct {
	// FailClosed blocks publish with ErrPriceUnavailable when a non-sentinel
	// key has no configured price. The default (false) treats missing
	// catalog entries as free.
	FailClosed bool
}

type PricingServiceInterface interface {
	PriceFor(ctx context.Context, category db_models.PriceCategory, key string) (int64, error)
	SetPriceFor(ctx context.Context, category db_models.PriceCategory, key string, cents int64) error
	TotalForContribution(ctx context.Context, contribution *db_models.Contribution) (int64, error)
}

type PricingService struct {
	catalogRepo repositories.CatalogRepositoryInterface
	cfg         PricingConfig
}

func NewPricingService(catalogRepo repositories.CatalogRepositoryInterface, cfg PricingConfig) PricingServiceInterface {
	return &PricingService{
		catalogRepo: catalogRepo,
		cfg:         cfg,
	}
}

// PriceFor resolves the cents price for one catalog choice. Sentinel free
// keys never hit the catalog.
func (p *PricingService) PriceFor(ctx context.Context, category db_models.PriceCategory, key string) (int64, error) {

	if db_models.IsSentinelKey(key) {
		return 0, nil
	}

	entry, err := p.catalogRepo.GetPrice(ctx, category, key)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	if entry == nil || entry.PriceInCents == nil {
		if p.cfg.FailClosed {
			return 0, utils.ErrPriceUnavailable
		}
		log.Printf("pricing: no catalog entry for %s/%s, resolving as free", category, key)
		return 0, nil
	}

	return *entry.PriceInCents, nil
}

func (p *PricingService) SetPriceFor(ctx context.Context, category db_models.PriceCategory, key string, cents int64) error {

	if db_models.IsSentinelKey(key) {
		return utils.ErrSentinelPrice
	}
	if cents < 0 {
		return utils.ErrInvalidInput
	}

	entry := &db_models.CatalogPrice{
		Category:     category,
		Key:          key,
		PriceInCents: &cents,
	}

	if err := p.catalogRepo.UpsertPrice(ctx, entry); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// TotalForContribution snapshots the full publish cost: the variant's own
// paid choice plus the donation add-on. The switch over Kind is exhaustive;
// an unknown kind is a hard input error, never priced as free.
func (p *PricingService) TotalForContribution(ctx context.Context, contribution *db_models.Contribution) (int64, error) {

	if contribution.DonationCount < 0 {
		return 0, utils.ErrInvalidInput
	}

	var variantCents int64
	var err error

	switch contribution.Kind {
	case db_models.KindMemory:
		if contribution.AssetPath != "" {
			variantCents, err = p.PriceFor(ctx, db_models.CategoryTribute, contribution.AssetDecoration)
		} else {
			variantCents, err = p.PriceFor(ctx, db_models.CategoryDecoration, contribution.Decoration)
		}
	case db_models.KindCondolence:
		variantCents, err = p.PriceFor(ctx, db_models.CategoryDecoration, contribution.Decoration)
	case db_models.KindDonation:
		variantCents, err = p.PriceFor(ctx, db_models.CategoryWreath, contribution.WreathTier)
	default:
		return 0, utils.ErrInvalidInput
	}

	if err != nil {
		return 0, err
	}

	return variantCents + int64(contribution.DonationCount)*DonationUnitPriceCents, nil
}
