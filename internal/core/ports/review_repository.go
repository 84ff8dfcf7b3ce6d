package ports

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

type ReviewRepository interface {
	List(ctx context.Context) ([]*domain.Review, error)
	Create(ctx context.Context, r *domain.Review) (*domain.WriteResult, error)
}
