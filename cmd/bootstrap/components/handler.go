package components

import (
	"slotbooker/internal/handler"
	"slotbooker/internal/handler/api"
	"slotbooker/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewBookingHandler,
		api.NewAdminHandler,
		middleware.NewIdentityMiddleware,
		middleware.NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
