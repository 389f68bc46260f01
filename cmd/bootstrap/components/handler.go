package components

import (
	"campus-order-service/internal/handler"
	"campus-order-service/internal/handler/api"
	"campus-order-service/internal/handler/middleware"
	"campus-order-service/internal/infra/metrics"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewSlotHandler,
		middleware.NewAuthMiddleware,
		func(o *api.OrderHandler, s *api.SlotHandler, m *metrics.BookingMetrics) handler.Handlers {
			return handler.Handlers{Order: o, Slot: s, Metrics: m.Handler()}
		},
	),
	fx.Invoke(handler.NewRouter),
)
