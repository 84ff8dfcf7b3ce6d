package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Upsert writes the non-empty profile fields, creating the account with
	// role "user" when it does not exist yet.
	Upsert(ctx context.Context, email string, profile domain.Profile) (*domain.WriteResult, error)
	// SetRole returns domain.ErrUserNotFound when no account matches.
	SetRole(ctx context.Context, email string, role domain.Role) (*domain.WriteResult, error)
	DeleteByID(ctx context.Context, id string) (*domain.WriteResult, error)
}
