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

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role,omitempty"`
	Name      string             `bson:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	Location  string             `bson:"location,omitempty"`
	Education string             `bson:"education,omitempty"`
	LinkedIn  string             `bson:"linkedin,omitempty"`
	Image     string             `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Role:      domain.Role(d.Role).Normalize(),
		Name:      d.Name,
		Phone:     d.Phone,
		Location:  d.Location,
		Education: d.Education,
		LinkedIn:  d.LinkedIn,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc, err := findOne[userDocument](ctx, r.col, bson.M{"email": email}, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	docs, err := findMany[userDocument](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, nil
}

// Upsert sets the non-empty profile fields and, on insert only, the role.
func (r *UserRepository) Upsert(ctx context.Context, email string, p domain.Profile) (*domain.WriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"email": email, "updated_at": now}
	for field, v := range map[string]string{
		"name":      p.Name,
		"phone":     p.Phone,
		"location":  p.Location,
		"education": p.Education,
		"linkedin":  p.LinkedIn,
		"image":     p.Image,
	} {
		if v != "" {
			set[field] = v
		}
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"role": string(domain.RoleUser), "created_at": now},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

func (r *UserRepository) SetRole(ctx context.Context, email string, role domain.Role) (*domain.WriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": string(role), "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return updateResult(res), nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) (*domain.WriteResult, error) {
	return deleteByID(ctx, r.col, id, domain.ErrUserNotFound)
}

// EnsureIndexes creates the unique email index the upsert relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
