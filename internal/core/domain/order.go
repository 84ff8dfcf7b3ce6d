package domain

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderUnpaid  OrderStatus = "unpaid"
	OrderPending OrderStatus = "pending"
	OrderShipped OrderStatus = "shipped"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderUnpaid:  {OrderPending},
	OrderPending: {OrderShipped},
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer purchase of a single tool.
type Order struct {
	ID            string      `json:"_id,omitempty"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	ToolID        string      `json:"tool_id"`
	ToolName      string      `json:"tool_name"`
	Quantity      int         `json:"quantity"`
	Price         float64     `json:"price"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	Date          string      `json:"date"`
	Status        OrderStatus `json:"status"`
	Paid          bool        `json:"paid"`
	TransactionID string      `json:"transactionId,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// CurrentStatus returns the effective status. Orders written before the
// status field existed are derived from the paid flag.
func (o *Order) CurrentStatus() OrderStatus {
	if o.Status != "" {
		return o.Status
	}
	if o.Paid {
		return OrderPending
	}
	return OrderUnpaid
}
