package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slotbooker/internal/handler/api"
	"slotbooker/internal/handler/middleware"
	"slotbooker/internal/pkg/config"
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
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	adminHandler *api.AdminHandler,
	identity *middleware.IdentityMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg, identity)
	setupRoutes(engine, slotHandler, bookingHandler, adminHandler, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, identity *middleware.IdentityMiddleware) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(identity.Resolve())
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	adminHandler *api.AdminHandler,
	rateLimiter *middleware.RateLimiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	public := engine.Group("/v1")
	public.Use(rateLimiter.Limit())
	{
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/dates", Handler: slotHandler.ListDates},
			{Method: http.MethodGet, Path: "/slots", Handler: slotHandler.ListSlots},
			{Method: http.MethodPost, Path: "/bookings", Handler: bookingHandler.CreateBooking},
			{Method: http.MethodGet, Path: "/bookings/:id", Handler: bookingHandler.GetBooking},
			{Method: http.MethodPost, Path: "/bookings/:id/confirm", Handler: bookingHandler.ConfirmBooking},
		})
	}

	admin := engine.Group("/admin/v1")
	{
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/bookings", Handler: adminHandler.ListBookings},
			{Method: http.MethodPatch, Path: "/bookings/:id", Handler: adminHandler.PatchBooking},
			{Method: http.MethodPost, Path: "/slots", Handler: adminHandler.CreateSlot},
		})
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
