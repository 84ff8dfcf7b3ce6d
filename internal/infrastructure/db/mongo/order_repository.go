package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	ToolID        string             `bson:"tool_id,omitempty"`
	ToolName      string             `bson:"tool_name"`
	Quantity      int                `bson:"quantity"`
	Price         float64            `bson:"price"`
	Address       string             `bson:"address"`
	Phone         string             `bson:"phone"`
	Date          string             `bson:"date"`
	Status        string             `bson:"status,omitempty"`
	Paid          bool               `bson:"paid"`
	TransactionID string             `bson:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty"`
}

func orderToDocument(o *domain.Order) orderDocument {
	return orderDocument{
		Name:          o.Name,
		Email:         o.Email,
		ToolID:        o.ToolID,
		ToolName:      o.ToolName,
		Quantity:      o.Quantity,
		Price:         o.Price,
		Address:       o.Address,
		Phone:         o.Phone,
		Date:          o.Date,
		Status:        string(o.Status),
		Paid:          o.Paid,
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
	}
}

func (d orderDocument) toDomain() *domain.Order {
	return &domain.Order{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		ToolID:        d.ToolID,
		ToolName:      d.ToolName,
		Quantity:      d.Quantity,
		Price:         d.Price,
		Address:       d.Address,
		Phone:         d.Phone,
		Date:          d.Date,
		Status:        domain.OrderStatus(d.Status),
		Paid:          d.Paid,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.WriteResult, error) {
	return insertOne(ctx, r.col, orderToDocument(o))
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	doc, err := findOne[orderDocument](ctx, r.col, bson.M{"_id": oid}, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"email": email})
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	docs, err := findMany[orderDocument](ctx, r.col, filter, opts)
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, len(docs))
	for i, d := range docs {
		orders[i] = d.toDomain()
	}
	return orders, nil
}

// MarkPaid only matches orders that are not yet paid, so concurrent payment
// submissions settle the order once.
func (r *OrderRepository) MarkPaid(ctx context.Context, id, transactionID string) (*domain.WriteResult, error) {
	filter := bson.M{"paid": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{
		"paid":          true,
		"transactionId": transactionID,
		"status":        string(domain.OrderPending),
	}}
	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.WriteResult, error) {
	update := bson.M{"$set": bson.M{"status": string(to)}}
	return r.conditionalUpdate(ctx, id, statusFilter(from), update)
}

// statusFilter matches orders whose effective status is from. Orders written
// before the status field existed derive it from paid, as Order.CurrentStatus does.
func statusFilter(from domain.OrderStatus) bson.M {
	noStatus := bson.M{"$in": bson.A{nil, ""}}
	switch from {
	case domain.OrderPending:
		return bson.M{"$or": bson.A{
			bson.M{"status": string(from)},
			bson.M{"status": noStatus, "paid": true},
		}}
	case domain.OrderUnpaid:
		return bson.M{"$or": bson.A{
			bson.M{"status": string(from)},
			bson.M{"status": noStatus, "paid": bson.M{"$ne": true}},
		}}
	default:
		return bson.M{"status": string(from)}
	}
}

// conditionalUpdate applies update when the order exists and matches filter.
// A miss is disambiguated into not-found and invalid transition.
func (r *OrderRepository) conditionalUpdate(ctx context.Context, id string, filter, update bson.M) (*domain.WriteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["_id"] = oid
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount > 0 {
		return updateResult(res), nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, domain.ErrInvalidTransition
}

func (r *OrderRepository) DeleteByID(ctx context.Context, id string) (*domain.WriteResult, error) {
	return deleteByID(ctx, r.col, id, domain.ErrOrderNotFound)
}
