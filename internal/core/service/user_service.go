package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	roles  ports.RoleAuthority
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, roles ports.RoleAuthority, tokens ports.TokenService, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, roles: roles, tokens: tokens, logger: logger}
}

// Upsert creates or refreshes the account for email and issues a new token.
// The role is never taken from the caller.
func (s *UserService) Upsert(ctx context.Context, email string, profile domain.Profile) (*ports.UpsertResult, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	res, err := s.repo.Upsert(ctx, email, profile)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if res.UpsertedCount > 0 {
		s.logger.Info().Str("email", email).Msg("user created")
	}
	return &ports.UpsertResult{Result: res, Token: token}, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Profile(ctx context.Context, requester domain.Identity, email string) (*domain.User, error) {
	if requester.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if requester.Email != email {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.roles.RoleOf(ctx, email)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

// Promote sets role=admin. Repeating it leaves the same final state.
func (s *UserService) Promote(ctx context.Context, email string) (*domain.WriteResult, error) {
	return s.setRole(ctx, email, domain.RoleAdmin)
}

// Demote sets role=user.
func (s *UserService) Demote(ctx context.Context, email string) (*domain.WriteResult, error) {
	return s.setRole(ctx, email, domain.RoleUser)
}

func (s *UserService) setRole(ctx context.Context, email string, role domain.Role) (*domain.WriteResult, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	res, err := s.repo.SetRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", email).Str("role", string(role)).Msg("role updated")
	return res, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.WriteResult, error) {
	res, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return res, nil
}
