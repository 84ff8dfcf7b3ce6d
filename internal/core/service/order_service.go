package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

type OrderService struct {
	orders   ports.OrderRepository
	payments ports.PaymentRepository
	notifier ports.OrderNotifier
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	payments ports.PaymentRepository,
	notifier ports.OrderNotifier,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, payments: payments, notifier: notifier, logger: logger}
}

// Place stores a new unpaid order and hands the confirmation email to the
// notifier. The notification outcome never affects the returned result.
func (s *OrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*domain.WriteResult, error) {
	if in.Email == "" || in.ToolName == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	order := &domain.Order{
		Name:      in.Name,
		Email:     in.Email,
		ToolID:    in.ToolID,
		ToolName:  in.ToolName,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Address:   in.Address,
		Phone:     in.Phone,
		Date:      in.Date,
		Status:    domain.OrderUnpaid,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create order")
		return nil, err
	}
	order.ID = res.InsertedID

	s.logger.Info().Str("order_id", order.ID).Str("email", order.Email).Msg("order placed")

	// Fire and forget: the completion channel is intentionally not awaited.
	_ = s.notifier.NotifyOrderPlaced(*order)

	return res, nil
}

// ListMine enforces that a user can only read their own orders.
func (s *OrderService) ListMine(ctx context.Context, requester domain.Identity, email string) ([]*domain.Order, error) {
	if requester.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if email == "" || email != requester.Email {
		return nil, domain.ErrForbidden
	}
	return s.orders.ListByEmail(ctx, email)
}

func (s *OrderService) Get(ctx context.Context, requester domain.Identity, id string) (*domain.Order, error) {
	if requester.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Email != requester.Email {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// RecordPayment marks the requester's order as paid and stores the payment.
func (s *OrderService) RecordPayment(ctx context.Context, requester domain.Identity, id, transactionID string) (*domain.WriteResult, error) {
	if transactionID == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := s.Get(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if !order.CurrentStatus().CanTransitionTo(domain.OrderPending) {
		return nil, fmt.Errorf("record payment: %w (from %s)", domain.ErrInvalidTransition, order.CurrentStatus())
	}

	res, err := s.orders.MarkPaid(ctx, id, transactionID)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	// Non-fatal: the order itself is already marked paid.
	payment := &domain.Payment{
		OrderID:       id,
		Email:         order.Email,
		TransactionID: transactionID,
		Amount:        order.Price,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.payments.Create(ctx, payment); err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("failed to insert payment record")
	}

	s.logger.Info().Str("order_id", id).Str("transaction_id", transactionID).Msg("order paid")
	return res, nil
}

// Ship moves a paid order to shipped.
func (s *OrderService) Ship(ctx context.Context, id string) (*domain.WriteResult, error) {
	res, err := s.orders.UpdateStatus(ctx, id, domain.OrderPending, domain.OrderShipped)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", id).Msg("order shipped")
	return res, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) (*domain.WriteResult, error) {
	res, err := s.orders.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return res, nil
}
