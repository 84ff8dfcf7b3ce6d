// Package authctx carries the authenticated identity on the echo context.
package authctx

import (
	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

const identityKey = "identity"

// SetIdentity attaches the verified identity to the request.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// Identity returns the identity attached by the auth middleware, if any.
func Identity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok || id.Email == "" {
		return domain.Identity{}, false
	}
	return id, true
}
