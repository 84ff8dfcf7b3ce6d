package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

type ToolService struct {
	repo   ports.ToolRepository
	logger zerolog.Logger
}

func NewToolService(repo ports.ToolRepository, logger zerolog.Logger) *ToolService {
	return &ToolService{repo: repo, logger: logger}
}

func (s *ToolService) List(ctx context.Context) ([]*domain.Tool, error) {
	return s.repo.List(ctx)
}

func (s *ToolService) Get(ctx context.Context, id string) (*domain.Tool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ToolService) Create(ctx context.Context, t *domain.Tool) (*domain.WriteResult, error) {
	if t.Name == "" || t.Price < 0 || t.MinimumOrder < 0 || t.AvailableQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := s.repo.Create(ctx, t)
	if err != nil {
		s.logger.Error().Err(err).Str("name", t.Name).Msg("failed to create tool")
		return nil, err
	}
	s.logger.Info().Str("tool_id", res.InsertedID).Str("name", t.Name).Msg("tool created")
	return res, nil
}

func (s *ToolService) Update(ctx context.Context, id string, u domain.ToolUpdate) (*domain.WriteResult, error) {
	if u.Empty() {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Update(ctx, id, u)
}

func (s *ToolService) Delete(ctx context.Context, id string) (*domain.WriteResult, error) {
	res, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tool_id", id).Msg("tool deleted")
	return res, nil
}
