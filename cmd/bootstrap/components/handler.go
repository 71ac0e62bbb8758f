package components

import (
	"reservation-engine/internal/handler"
	"reservation-engine/internal/handler/api"
	"reservation-engine/internal/handler/middleware"
	"reservation-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewResourceHandler,
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		func(cfg config.Config) *middleware.AuthMiddleware {
			return middleware.NewAuthMiddleware(cfg.JWT)
		},
	),
	fx.Invoke(handler.NewRouter),
)
