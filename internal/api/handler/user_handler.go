package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// UserHandler handles accounts and role administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Upsert handles PUT /user/:email. It creates the account on first sign-in,
// refreshes the profile otherwise, and returns a fresh access token.
//
// @Summary      Create or refresh an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string             true  "Account email"
// @Param        body   body      upsertUserRequest  false "Profile fields"
// @Success      200    {object}  upsertUserResponse
// @Failure      400    {object}  errorResponse
// @Router       /user/{email} [put]
func (h *UserHandler) Upsert(c echo.Context) error {
	email := c.Param("email")
	if err := idValidator.Var(email, "required,email"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	var req upsertUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.service.Upsert(c.Request().Context(), email, domain.Profile{
		Name:      req.Name,
		Phone:     req.Phone,
		Location:  req.Location,
		Education: req.Education,
		LinkedIn:  req.LinkedIn,
		Image:     req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, upsertUserResponse{Result: out.Result, Token: out.Token})
}

// List handles GET /user.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Profile handles GET /user/:email.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  domain.User
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /user/{email} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := requester(c)
	if err != nil {
		return err
	}
	user, err := h.service.Profile(c.Request().Context(), id, c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// IsAdmin handles GET /admin/:email.
//
// @Summary      Check whether an account is an admin
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  adminResponse
// @Failure      404    {object}  errorResponse
// @Router       /admin/{email} [get]
func (h *UserHandler) IsAdmin(c echo.Context) error {
	admin, err := h.service.IsAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: admin})
}

// Promote handles PUT /user/admin/:email.
//
// @Summary      Grant the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  domain.WriteResult
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /user/admin/{email} [put]
func (h *UserHandler) Promote(c echo.Context) error {
	res, err := h.service.Promote(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Demote handles PUT /users/admin/:email.
//
// @Summary      Revoke the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  domain.WriteResult
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/admin/{email} [put]
func (h *UserHandler) Demote(c echo.Context) error {
	res, err := h.service.Demote(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /user/:id.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.WriteResult
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
