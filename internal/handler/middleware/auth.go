package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"campus-order-service/internal/domain/user"
	"campus-order-service/internal/handler/httperr"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxPrincipalKey = "principal"
	ctxUserIDKey    = "user_id"
	ctxUserRoleKey  = "user_role"
)

var (
	errMissingToken     = errs.New("access token required")
	errPrincipalMissing = errs.New("principal missing from context")
	errRoleNotAllowed   = errs.New("role not allowed")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", httperr.Code("unauthorized"))
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", httperr.Code("unauthorized"))
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Set(ctxUserIDKey, principal.StudentID())
		c.Set(ctxUserRoleKey, principal.Role())
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errPrincipalMissing, "Internal server error", nil)
			return
		}
		if !slices.Contains(roles, principal.Role()) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.Wrapf(errRoleNotAllowed, "role %s", principal.Role()),
				"Insufficient permissions", httperr.Code("forbidden"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetPrincipal(c *gin.Context) (*user.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*user.Principal)
	return p, ok
}

// SetPrincipal is used by tests and tooling that authenticate out of band.
func SetPrincipal(c *gin.Context, p *user.Principal) {
	c.Set(ctxPrincipalKey, p)
	c.Set(ctxUserIDKey, p.StudentID())
	c.Set(ctxUserRoleKey, p.Role())
}
