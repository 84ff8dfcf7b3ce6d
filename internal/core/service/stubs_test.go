package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// stubNotifier records every order it was asked to announce and answers with err.
type stubNotifier struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (n *stubNotifier) NotifyOrderPlaced(order domain.Order) <-chan error {
	n.mu.Lock()
	n.orders = append(n.orders, order)
	n.mu.Unlock()

	done := make(chan error, 1)
	done <- n.err
	close(done)
	return done
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.orders)
}

type stubGateway struct {
	calls   int
	lastKey string
	amount  int64
	err     error
}

func (g *stubGateway) CreateIntent(_ context.Context, amountCents int64, currency, key string) (*domain.PaymentIntent, error) {
	g.calls++
	g.lastKey = key
	g.amount = amountCents
	if g.err != nil {
		return nil, g.err
	}
	return &domain.PaymentIntent{
		ID:           fmt.Sprintf("pi_%d", g.calls),
		ClientSecret: fmt.Sprintf("pi_%d_secret", g.calls),
		AmountCents:  amountCents,
		Currency:     currency,
	}, nil
}

type stubIntentCache struct {
	entries map[string]domain.CachedIntent
	getErr  error
}

func newStubIntentCache() *stubIntentCache {
	return &stubIntentCache{entries: make(map[string]domain.CachedIntent)}
}

func (c *stubIntentCache) Get(_ context.Context, key string) (domain.CachedIntent, bool, error) {
	if c.getErr != nil {
		return domain.CachedIntent{}, false, c.getErr
	}
	e, ok := c.entries[key]
	return e, ok, nil
}

func (c *stubIntentCache) Put(_ context.Context, key string, intent domain.CachedIntent) error {
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = intent
	}
	return nil
}
