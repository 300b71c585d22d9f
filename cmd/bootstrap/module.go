package bootstrap

import (
	"roomstay-admin/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	SessionModule,
	FallbackModule,
	components.UpstreamModule,
	components.UseCaseModule,
	components.HandlerModule,
)
