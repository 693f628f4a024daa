package accountfx

import (
	"go.uber.org/fx"
	"memoria/internal/api/controllers"
	"memoria/internal/repositories"
	"memoria/internal/services"
)

var Module = fx.Provide(
	repositories.NewAccountRepository,
	services.NewAccountService,
	controllers.NewAccountController,
)
