package components

import (
	"roomstay-admin/internal/handler"
	"roomstay-admin/internal/handler/api"
	"roomstay-admin/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewProfileHandler,
		api.NewUserHandler,
		api.NewRoomHandler,
		api.NewLocationHandler,
		api.NewBookingHandler,
		api.NewDashboardHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
