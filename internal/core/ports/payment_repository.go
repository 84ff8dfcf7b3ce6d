package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// PaymentRepository stores settled payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.WriteResult, error)
}

// PaymentGateway creates provider-side payment intents.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string) (*domain.PaymentIntent, error)
}

// IntentCache remembers the intent issued for a requester-scoped idempotency key.
type IntentCache interface {
	// Get reports found=false when the key has not been seen.
	Get(ctx context.Context, key string) (intent domain.CachedIntent, found bool, err error)
	Put(ctx context.Context, key string, intent domain.CachedIntent) error
}
