package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

const collectionTools = "tools"

type ToolRepository struct {
	col *mongo.Collection
}

func NewToolRepository(db *mongo.Database) *ToolRepository {
	return &ToolRepository{col: db.Collection(collectionTools)}
}

type toolDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Description       string             `bson:"description"`
	Image             string             `bson:"image"`
	Price             float64            `bson:"price"`
	MinimumOrder      int                `bson:"minimum_order"`
	AvailableQuantity int                `bson:"available_quantity"`
	CreatedAt         time.Time          `bson:"created_at,omitempty"`
	UpdatedAt         time.Time          `bson:"updated_at,omitempty"`
}

func toolToDocument(t *domain.Tool) toolDocument {
	return toolDocument{
		Name:              t.Name,
		Description:       t.Description,
		Image:             t.Image,
		Price:             t.Price,
		MinimumOrder:      t.MinimumOrder,
		AvailableQuantity: t.AvailableQuantity,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func (d toolDocument) toDomain() *domain.Tool {
	return &domain.Tool{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Description:       d.Description,
		Image:             d.Image,
		Price:             d.Price,
		MinimumOrder:      d.MinimumOrder,
		AvailableQuantity: d.AvailableQuantity,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (r *ToolRepository) List(ctx context.Context) ([]*domain.Tool, error) {
	docs, err := findMany[toolDocument](ctx, r.col, bson.M{})
	if err != nil {
		return nil, err
	}
	tools := make([]*domain.Tool, len(docs))
	for i, d := range docs {
		tools[i] = d.toDomain()
	}
	return tools, nil
}

func (r *ToolRepository) FindByID(ctx context.Context, id string) (*domain.Tool, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	doc, err := findOne[toolDocument](ctx, r.col, bson.M{"_id": oid}, domain.ErrToolNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ToolRepository) Create(ctx context.Context, t *domain.Tool) (*domain.WriteResult, error) {
	return insertOne(ctx, r.col, toolToDocument(t))
}

// Update writes only the fields set on u.
func (r *ToolRepository) Update(ctx context.Context, id string, u domain.ToolUpdate) (*domain.WriteResult, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.MinimumOrder != nil {
		set["minimum_order"] = *u.MinimumOrder
	}
	if u.AvailableQuantity != nil {
		set["available_quantity"] = *u.AvailableQuantity
	}
	return updateByID(ctx, r.col, id, bson.M{"$set": set}, domain.ErrToolNotFound)
}

func (r *ToolRepository) DeleteByID(ctx context.Context, id string) (*domain.WriteResult, error) {
	return deleteByID(ctx, r.col, id, domain.ErrToolNotFound)
}
