package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.WriteResult, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByEmail returns the orders placed with the given email, newest first.
	ListByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	// MarkPaid sets paid, transaction id and status in a single update.
	MarkPaid(ctx context.Context, id, transactionID string) (*domain.WriteResult, error)
	// UpdateStatus moves the order from one status to another. The update only
	// applies while the stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.WriteResult, error)
	DeleteByID(ctx context.Context, id string) (*domain.WriteResult, error)
}
