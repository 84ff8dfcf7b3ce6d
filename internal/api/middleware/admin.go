package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/authctx"
	"github.com/elitetoolboxes/manufacturer-api/internal/api/metrics"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// RequireAdmin lets the request through only when the authenticated account
// currently holds the admin role. The role is read from the store on every
// request. It must be mounted after Auth.
func RequireAdmin(roles ports.RoleAuthority, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := authctx.Identity(c)
			if !ok {
				metrics.AuthzDecisionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			role, err := roles.RoleOf(c.Request().Context(), identity.Email)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				metrics.AuthzDecisionsTotal.WithLabelValues("unknown_user").Inc()
				log.Debug().Str("email", identity.Email).Str("path", c.Path()).Msg("admin check: unknown account")
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			case err != nil:
				metrics.AuthzDecisionsTotal.WithLabelValues("lookup_error").Inc()
				return err
			case role != domain.RoleAdmin:
				metrics.AuthzDecisionsTotal.WithLabelValues("not_admin").Inc()
				log.Debug().Str("email", identity.Email).Str("path", c.Path()).Msg("admin check: denied")
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("admin").Inc()
			return next(c)
		}
	}
}
