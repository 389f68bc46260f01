package bootstrap

import (
	"campus-order-service/internal/pkg/config"
	"campus-order-service/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	if len(cfg.JWT.Secret) < 16 {
		panic("JWT_SECRET must be at least 16 bytes")
	}
	return jwt.NewService(cfg.JWT.Secret)
}
