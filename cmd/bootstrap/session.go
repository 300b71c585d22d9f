package bootstrap

import (
	"roomstay-admin/internal/pkg/config"
	"roomstay-admin/internal/pkg/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		fx.Annotate(
			NewSessionProvider,
			fx.As(new(session.Provider)),
		),
	),
)

func NewSessionProvider(cfg config.Config) *session.FileProvider {
	return session.NewFileProvider(cfg.Session.StatePath)
}
