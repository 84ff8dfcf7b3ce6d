package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// OrderNotifier sends order confirmations in the background. The returned
// channel yields exactly one result and is then closed; callers are free to
// ignore it.
type OrderNotifier interface {
	NotifyOrderPlaced(order domain.Order) <-chan error
}

// Mailer submits a rendered email to the delivery provider.
type Mailer interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}
