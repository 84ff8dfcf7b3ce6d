package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/metrics"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// OrderHandler handles order placement, payment and fulfilment.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place handles POST /order. The confirmation email is sent in the
// background and never delays or fails the response.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Order"
// @Success      200   {object}  placeOrderResponse
// @Failure      400   {object}  errorResponse
// @Router       /order [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Place(c.Request().Context(), ports.PlaceOrderInput{
		Name:     req.Name,
		Email:    req.Email,
		ToolID:   req.ToolID,
		ToolName: req.ToolName,
		Quantity: req.Quantity,
		Price:    req.Price,
		Address:  req.Address,
		Phone:    req.Phone,
		Date:     req.Date,
	})
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusOK, placeOrderResponse{Success: true, Result: res})
}

// ListMine handles GET /order?email=.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Account email, must match the token"
// @Success      200    {array}   domain.Order
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /order [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	id, err := requester(c)
	if err != nil {
		return err
	}
	orders, err := h.service.ListMine(c.Request().Context(), id, c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /order/:id.
//
// @Summary      Get an own order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /order/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	who, err := requester(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.Request().Context(), who, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// RecordPayment handles PATCH /order/:id.
//
// @Summary      Record the payment of an own order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Order id"
// @Param        body  body      recordPaymentRequest  true  "Provider transaction"
// @Success      200   {object}  domain.WriteResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /order/{id} [patch]
func (h *OrderHandler) RecordPayment(c echo.Context) error {
	who, err := requester(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req recordPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.RecordPayment(c.Request().Context(), who, id, req.TransactionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /orders.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      403  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Ship handles PUT /orders/:id/ship.
//
// @Summary      Mark a paid order as shipped
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.WriteResult
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /orders/{id}/ship [put]
func (h *OrderHandler) Ship(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := h.service.Ship(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.WriteResult
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
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
