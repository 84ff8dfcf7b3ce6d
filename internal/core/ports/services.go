package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// TokenService issues and verifies signed identity credentials.
type TokenService interface {
	Issue(email string) (string, error)
	// Verify returns domain.ErrForbidden for any malformed, tampered or expired token.
	Verify(token string) (domain.Identity, error)
}

// RoleAuthority resolves the current stored role of an account.
type RoleAuthority interface {
	// RoleOf returns domain.ErrUserNotFound when no account matches.
	RoleOf(ctx context.Context, email string) (domain.Role, error)
}

// UpsertResult is returned by UserService.Upsert.
type UpsertResult struct {
	Result *domain.WriteResult
	Token  string
}

type UserService interface {
	Upsert(ctx context.Context, email string, profile domain.Profile) (*UpsertResult, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Profile returns the requester's own account; other accounts are forbidden.
	Profile(ctx context.Context, requester domain.Identity, email string) (*domain.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, email string) (*domain.WriteResult, error)
	Demote(ctx context.Context, email string) (*domain.WriteResult, error)
	Delete(ctx context.Context, id string) (*domain.WriteResult, error)
}

type ToolService interface {
	List(ctx context.Context) ([]*domain.Tool, error)
	Get(ctx context.Context, id string) (*domain.Tool, error)
	Create(ctx context.Context, t *domain.Tool) (*domain.WriteResult, error)
	Update(ctx context.Context, id string, u domain.ToolUpdate) (*domain.WriteResult, error)
	Delete(ctx context.Context, id string) (*domain.WriteResult, error)
}

// PlaceOrderInput carries the customer-supplied order fields.
type PlaceOrderInput struct {
	Name     string
	Email    string
	ToolID   string
	ToolName string
	Quantity int
	Price    float64
	Address  string
	Phone    string
	Date     string
}

type OrderService interface {
	Place(ctx context.Context, in PlaceOrderInput) (*domain.WriteResult, error)
	// ListMine returns the orders of email, which must match the requester.
	ListMine(ctx context.Context, requester domain.Identity, email string) ([]*domain.Order, error)
	Get(ctx context.Context, requester domain.Identity, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	RecordPayment(ctx context.Context, requester domain.Identity, id, transactionID string) (*domain.WriteResult, error)
	Ship(ctx context.Context, id string) (*domain.WriteResult, error)
	Delete(ctx context.Context, id string) (*domain.WriteResult, error)
}

// CreateReviewInput carries the review body; the reviewer email comes from the identity.
type CreateReviewInput struct {
	Name    string
	Rating  int
	Comment string
}

type ReviewService interface {
	List(ctx context.Context) ([]*domain.Review, error)
	Create(ctx context.Context, requester domain.Identity, in CreateReviewInput) (*domain.WriteResult, error)
}

type PaymentService interface {
	// CreateIntent converts price (in dollars) to cents and returns the client secret.
	// Idempotency keys are scoped to the requester.
	CreateIntent(ctx context.Context, requester domain.Identity, price float64, idempotencyKey string) (string, error)
}
