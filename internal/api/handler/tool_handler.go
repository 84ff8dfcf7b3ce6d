package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// ToolHandler serves the tool catalogue.
type ToolHandler struct {
	service ports.ToolService
}

func NewToolHandler(service ports.ToolService) *ToolHandler {
	return &ToolHandler{service: service}
}

// List handles GET /tool.
//
// @Summary      List tools
// @Tags         tools
// @Produce      json
// @Success      200  {array}   domain.Tool
// @Failure      500  {object}  errorResponse
// @Router       /tool [get]
func (h *ToolHandler) List(c echo.Context) error {
	tools, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tools)
}

// Get handles GET /tool/:id.
//
// @Summary      Get a tool
// @Tags         tools
// @Produce      json
// @Param        id   path      string  true  "Tool id"
// @Success      200  {object}  domain.Tool
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tool/{id} [get]
func (h *ToolHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tool, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tool)
}

// Create handles POST /tool.
//
// @Summary      Add a tool
// @Tags         tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createToolRequest  true  "Tool"
// @Success      201   {object}  domain.WriteResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /tool [post]
func (h *ToolHandler) Create(c echo.Context) error {
	var req createToolRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), &domain.Tool{
		Name:              req.Name,
		Description:       req.Description,
		Image:             req.Image,
		Price:             req.Price,
		MinimumOrder:      req.MinimumOrder,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// Update handles PUT /tool/:id. Only the supplied fields change.
//
// @Summary      Update a tool
// @Tags         tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Tool id"
// @Param        body  body      updateToolRequest  true  "Fields to change"
// @Success      200   {object}  domain.WriteResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tool/{id} [put]
func (h *ToolHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateToolRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /tool/:id.
//
// @Summary      Delete a tool
// @Tags         tools
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tool id"
// @Success      200  {object}  domain.WriteResult
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tool/{id} [delete]
func (h *ToolHandler) Delete(c echo.Context) error {
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
