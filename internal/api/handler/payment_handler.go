package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/metrics"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent handles POST /create-payment-intent.
//
// @Summary      Create a card payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Replays by the same user for the same amount return the first client secret"
// @Param        body             body      paymentIntentRequest  true   "Amount in dollars"
// @Success      200              {object}  paymentIntentResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	who, err := requester(c)
	if err != nil {
		return err
	}
	var req paymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := h.service.CreateIntent(c.Request().Context(), who, req.Price, c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}
