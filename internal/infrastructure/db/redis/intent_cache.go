package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

const intentTTL = 24 * time.Hour

// IntentCache remembers the intent issued per requester-scoped idempotency
// key so a retried checkout gets the same payment intent back.
// Key format: payment_intent:<email>:<idempotency_key>
// Value format: <amount_cents>:<client_secret>
type IntentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIntentCache creates an IntentCache wrapping the given Redis client.
func NewIntentCache(client *redis.Client) *IntentCache {
	return &IntentCache{client: client, ttl: intentTTL}
}

func (c *IntentCache) Get(ctx context.Context, key string) (domain.CachedIntent, bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.CachedIntent{}, false, nil
	}
	if err != nil {
		return domain.CachedIntent{}, false, fmt.Errorf("intent cache get: %w", err)
	}

	amount, secret, ok := strings.Cut(raw, ":")
	cents, perr := strconv.ParseInt(amount, 10, 64)
	if !ok || perr != nil {
		return domain.CachedIntent{}, false, fmt.Errorf("intent cache get: malformed entry for %q", key)
	}
	return domain.CachedIntent{ClientSecret: secret, AmountCents: cents}, true, nil
}

// Put stores the intent unless another request stored one first.
func (c *IntentCache) Put(ctx context.Context, key string, intent domain.CachedIntent) error {
	value := strconv.FormatInt(intent.AmountCents, 10) + ":" + intent.ClientSecret
	if err := c.client.SetNX(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("intent cache put: %w", err)
	}
	return nil
}

func (c *IntentCache) key(scopedKey string) string {
	return "payment_intent:" + scopedKey
}
