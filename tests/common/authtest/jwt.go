//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"campus-order-service/internal/domain/user"
	"campus-order-service/internal/pkg/config"
	"campus-order-service/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

const (
	StudentPhone = "+919800000001"
	VendorPhone  = "+919800000100"
	AdminPhone   = "+919800000999"
)

// JWTHelper mints tokens the way the auth service does.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, phone string, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(phone, role, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, phone string, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(phone, role, -time.Minute)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) Student(t *testing.T) string {
	return h.GenerateToken(t, StudentPhone, user.RoleStudent)
}

func (h *JWTHelper) Vendor(t *testing.T) string {
	return h.GenerateToken(t, VendorPhone, user.RoleVendor)
}

func (h *JWTHelper) Admin(t *testing.T) string {
	return h.GenerateToken(t, AdminPhone, user.RoleAdmin)
}
