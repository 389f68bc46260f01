package components

import (
	"campus-order-service/internal/handler/api"
	"campus-order-service/internal/infra/catalog"
	"campus-order-service/internal/infra/eta"
	"campus-order-service/internal/infra/httpclient"
	"campus-order-service/internal/infra/metrics"
	"campus-order-service/internal/pkg/config"
	"campus-order-service/internal/usecase/shared"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// ClientModule wires the outbound collaborators and the metrics sink.
var ClientModule = fx.Module("client",
	fx.Provide(
		fx.Annotate(
			NewCatalogClient,
			fx.As(new(shared.SlotCatalog)),
			fx.As(new(api.VendorResolver)),
		),
		fx.Annotate(
			NewETAClient,
			fx.As(new(shared.ETAAnnotator)),
		),
		metrics.NewBookingMetrics,
		func(m *metrics.BookingMetrics) shared.BookingObserver { return m },
	),
)

func NewCatalogClient(cfg config.Config, tracer trace.Tracer) *catalog.Client {
	return catalog.NewClient(httpclient.NewClient(cfg.Services.VendorServiceURL, tracer, nil), cfg.Services.VendorTimeout)
}

func NewETAClient(cfg config.Config, tracer trace.Tracer) *eta.Client {
	return eta.NewClient(httpclient.NewClient(cfg.Services.AIServiceURL, tracer, nil), cfg.Services.AIRatePerSec, cfg.Services.AITimeout)
}
