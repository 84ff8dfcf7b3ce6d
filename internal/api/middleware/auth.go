package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/authctx"
	"github.com/elitetoolboxes/manufacturer-api/internal/api/metrics"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// Auth verifies the bearer token and attaches the identity to the context.
// A missing header is 401; anything present but unusable is 403.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthzDecisionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AuthzDecisionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			identity, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AuthzDecisionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("authenticated").Inc()
			authctx.SetIdentity(c, identity)
			return next(c)
		}
	}
}
