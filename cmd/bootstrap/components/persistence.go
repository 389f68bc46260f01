package components

import (
	"campus-order-service/internal/infra/readstore"
	"campus-order-service/internal/infra/repository"
	"campus-order-service/internal/infra/uow"
	"campus-order-service/internal/usecase/queries"
	"campus-order-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Order
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		// Capacity
		fx.Annotate(
			readstore.NewCapacityReadStore,
			fx.As(new(queries.CapacityReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		repository.NewCapacityLedgerRepository,
		repository.NewOrderRepository,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)
