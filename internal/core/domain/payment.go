package domain

import "time"

// Payment records a settled order payment.
type Payment struct {
	ID            string    `json:"_id,omitempty"`
	OrderID       string    `json:"order_id"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentIntent is the provider-side handle a client uses to confirm a card payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// CachedIntent is what the idempotency cache keeps per requester and key.
type CachedIntent struct {
	ClientSecret string
	AmountCents  int64
}
