package service

import (
	"context"
	"time"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService struct {
	repo ports.ReviewRepository
}

func NewReviewService(repo ports.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.repo.List(ctx)
}

// Create stores a review attributed to the requester.
func (s *ReviewService) Create(ctx context.Context, requester domain.Identity, in ports.CreateReviewInput) (*domain.WriteResult, error) {
	if requester.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Rating < minRating || in.Rating > maxRating || in.Comment == "" {
		return nil, domain.ErrInvalidInput
	}

	return s.repo.Create(ctx, &domain.Review{
		Name:      in.Name,
		Email:     requester.Email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	})
}
