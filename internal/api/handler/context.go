package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/authctx"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// requester returns the identity attached by the Auth middleware. Its absence
// means the route was mounted without Auth, so the request is rejected.
func requester(c echo.Context) (domain.Identity, error) {
	id, ok := authctx.Identity(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	return id, nil
}
