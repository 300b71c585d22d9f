package bootstrap

import (
	"context"
	"log/slog"

	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/config"

	"go.uber.org/fx"
)

var FallbackModule = fx.Module("fallback",
	fx.Provide(
		NewFallbackStore,
	),
)

func NewFallbackStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*fallback.Store, error) {
	store, err := fallback.Open(context.Background(), cfg.Fallback.DSN, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}
