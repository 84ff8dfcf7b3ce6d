package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

const (
	paymentCurrency = "usd"

	// maxPrice is the largest single charge the card processor accepts.
	maxPrice = 999999.99
)

type PaymentService struct {
	gateway ports.PaymentGateway
	cache   ports.IntentCache
	logger  zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, cache ports.IntentCache, logger zerolog.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, cache: cache, logger: logger}
}

// CreateIntent creates a card payment intent for price dollars. When an
// idempotency key is supplied, a repeated request from the same requester
// for the same amount returns the first secret.
func (s *PaymentService) CreateIntent(ctx context.Context, requester domain.Identity, price float64, idempotencyKey string) (string, error) {
	if requester.Email == "" {
		return "", domain.ErrUnauthorized
	}
	if price <= 0 || price > maxPrice || math.IsNaN(price) || math.IsInf(price, 0) {
		return "", domain.ErrInvalidInput
	}
	amount := int64(math.Round(price * 100))

	var scopedKey string
	if idempotencyKey != "" {
		scopedKey = requester.Email + ":" + idempotencyKey
		cached, found, err := s.cache.Get(ctx, scopedKey)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("intent cache lookup failed, creating anyway")
		case found && cached.AmountCents != amount:
			return "", fmt.Errorf("%w: idempotency key reused with a different amount", domain.ErrInvalidInput)
		case found:
			s.logger.Info().Str("idempotency_key", idempotencyKey).Str("email", requester.Email).Msg("idempotent replay")
			return cached.ClientSecret, nil
		}
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, paymentCurrency, scopedKey)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	if scopedKey != "" {
		entry := domain.CachedIntent{ClientSecret: intent.ClientSecret, AmountCents: amount}
		if err := s.cache.Put(ctx, scopedKey, entry); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to cache payment intent")
		}
	}

	s.logger.Info().Str("intent_id", intent.ID).Int64("amount", amount).Msg("payment intent created")
	return intent.ClientSecret, nil
}
