package pricingfx

import (
	"go.uber.org/fx"
	"os"
	"memoria/internal/api/controllers"
	"memoria/internal/repositories"
	"memoria/internal/services"
)

var Module = fx.Provide(
	repositories.NewCatalogRepository,
	providePricingService,
	controllers.NewPricingController,
)

func providePricingService(catalogRepo repositories.CatalogRepositoryInterface) services.PricingServiceInterface {
	cfg := services.PricingConfig{
		FailClosed: os.Getenv("PRICING_FAIL_CLOSED") == "true",
	}

	return services.NewPricingService(catalogRepo, cfg)
}
