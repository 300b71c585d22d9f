package components

import (
	"log/slog"

	"roomstay-admin/internal/pkg/config"
	"roomstay-admin/internal/pkg/session"
	"roomstay-admin/internal/upstream"

	"go.uber.org/fx"
)

var UpstreamModule = fx.Module("upstream",
	fx.Provide(
		NewUpstreamClient,
		upstream.NewAuth,
		upstream.NewUsers,
		upstream.NewRooms,
		upstream.NewLocations,
		upstream.NewBookings,
	),
)

func NewUpstreamClient(cfg config.Config, sess session.Provider, logger *slog.Logger) *upstream.Client {
	return upstream.New(cfg.Upstream, sess, logger)
}
