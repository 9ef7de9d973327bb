package middleware

import (
	"net/http"
	"strings"

	"service-plus/internal/auth"
	"service-plus/pkg/jwtutil"
	"service-plus/pkg/logger"
	"service-plus/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const principalKey = "principal"

// AuthMiddleware validates the JWT token from the Authorization header and
// rebuilds the principal from its claims. The claims are the only source of
// tenant routing on authenticated routes; client-supplied tenant ids are
// ignored from here on.
func AuthMiddleware(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			// Validate the token
			claims, err := jwt.Validate(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			principal := auth.FromClaims(claims)
			c.Set(principalKey, principal)

			log.Debug("Request authenticated",
				zap.String("subject", principal.Subject),
				zap.String("user_type", principal.UserType))

			return next(c)
		}
	}
}

// RequireSuperAdmin rejects requests whose principal is not the superadmin.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal := PrincipalFromContext(c)
		if principal == nil || !principal.IsSuperAdmin() {
			logger.FromContext(c).Warn("Superadmin route denied")
			prometheus.RecordAuthError("forbidden")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "superadmin access required"})
		}
		return next(c)
	}
}

// PrincipalFromContext returns the authenticated principal, or nil on
// unauthenticated routes.
func PrincipalFromContext(c echo.Context) *auth.Principal {
	principal, ok := c.Get(principalKey).(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}
