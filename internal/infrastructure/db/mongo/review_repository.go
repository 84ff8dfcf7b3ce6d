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

const collectionReviews = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
}

func (r *ReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	docs, err := findMany[reviewDocument](ctx, r.col, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	reviews := make([]*domain.Review, len(docs))
	for i, d := range docs {
		reviews[i] = &domain.Review{
			ID:        d.ID.Hex(),
			Name:      d.Name,
			Email:     d.Email,
			Rating:    d.Rating,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
		}
	}
	return reviews, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (*domain.WriteResult, error) {
	return insertOne(ctx, r.col, reviewDocument{
		Name:      rv.Name,
		Email:     rv.Email,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	})
}
