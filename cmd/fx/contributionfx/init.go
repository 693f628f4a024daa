package contributionfx

import (
	"go.uber.org/fx"
	"memoria/internal/api/controllers"
	"memoria/internal/repositories"
	"memoria/internal/services"
)

var Module = fx.Provide(
	repositories.NewContributionRepository,
	repositories.NewMemorialRepository,
	services.NewContributionService,
	controllers.NewContributionController,
)
