package bootstrap

import (
	"campus-order-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	TracingModule,
	LockModule,
	components.ClientModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
