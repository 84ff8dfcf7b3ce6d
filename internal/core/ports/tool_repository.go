package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// ToolRepository defines persistence operations for the tool catalogue.
type ToolRepository interface {
	List(ctx context.Context) ([]*domain.Tool, error)
	FindByID(ctx context.Context, id string) (*domain.Tool, error)
	Create(ctx context.Context, t *domain.Tool) (*domain.WriteResult, error)
	Update(ctx context.Context, id string, u domain.ToolUpdate) (*domain.WriteResult, error)
	DeleteByID(ctx context.Context, id string) (*domain.WriteResult, error)
}
