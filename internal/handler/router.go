package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roomstay-admin/internal/handler/api"
	"roomstay-admin/internal/handler/middleware"
	"roomstay-admin/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	userHandler *api.UserHandler,
	roomHandler *api.RoomHandler,
	locationHandler *api.LocationHandler,
	bookingHandler *api.BookingHandler,
	dashboardHandler *api.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, profileHandler, userHandler, roomHandler, locationHandler, bookingHandler, dashboardHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	userHandler *api.UserHandler,
	roomHandler *api.RoomHandler,
	locationHandler *api.LocationHandler,
	bookingHandler *api.BookingHandler,
	dashboardHandler *api.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireSession())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		profile := apiGroup.Group("/profile")
		profile.Use(authMiddleware.RequireSession())
		{
			addRoutes(profile, []route{
				{Method: http.MethodGet, Path: "", Handler: profileHandler.Get},
				{Method: http.MethodPut, Path: "", Handler: profileHandler.Update},
				{Method: http.MethodPost, Path: "/avatar", Handler: profileHandler.UploadAvatar},
			})
		}

		dashboard := apiGroup.Group("/dashboard")
		dashboard.Use(authMiddleware.RequireSession())
		{
			addRoutes(dashboard, []route{
				{Method: http.MethodGet, Path: "/stats", Handler: dashboardHandler.Stats},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireSession())
		{
			adminOnly := []gin.HandlerFunc{authMiddleware.RequireAdmin()}

			addRoutes(admin.Group("/users"), []route{
				{Method: http.MethodGet, Path: "", Handler: userHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: userHandler.Get},
				{Method: http.MethodPost, Path: "", Handler: userHandler.Create, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: userHandler.Update, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: userHandler.Delete, Mw: adminOnly},
			})

			addRoutes(admin.Group("/rooms"), []route{
				{Method: http.MethodGet, Path: "", Handler: roomHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: roomHandler.Get},
				{Method: http.MethodPost, Path: "", Handler: roomHandler.Create, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: roomHandler.Update, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: roomHandler.Delete, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/image", Handler: roomHandler.UploadImage, Mw: adminOnly},
			})

			addRoutes(admin.Group("/locations"), []route{
				{Method: http.MethodGet, Path: "", Handler: locationHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: locationHandler.Get},
				{Method: http.MethodPost, Path: "", Handler: locationHandler.Create, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: locationHandler.Update, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: locationHandler.Delete, Mw: adminOnly},
			})

			addRoutes(admin.Group("/bookings"), []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: bookingHandler.Update, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Delete, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
