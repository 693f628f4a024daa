package dbfx

import (
	"go.uber.org/fx"
	"memoria/internal/infra"
)

var Module = fx.Provide(
	infra.InitPostgresql,
)
