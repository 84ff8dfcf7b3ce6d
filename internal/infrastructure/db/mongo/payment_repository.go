package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

const collectionPayments = "payments"

// PaymentRepository keeps an append-only record of settled payments.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type paymentDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OrderID       primitive.ObjectID `bson:"order_id"`
	Email         string             `bson:"email"`
	TransactionID string             `bson:"transaction_id"`
	Amount        float64            `bson:"amount"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.WriteResult, error) {
	orderID, err := objectID(p.OrderID)
	if err != nil {
		return nil, err
	}
	return insertOne(ctx, r.col, paymentDocument{
		OrderID:       orderID,
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
	})
}
