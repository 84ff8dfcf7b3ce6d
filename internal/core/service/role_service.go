package service

import (
	"context"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// RoleService reads the stored role on every call; roles are never cached
// so a demotion takes effect on the next request.
type RoleService struct {
	users ports.UserRepository
}

func NewRoleService(users ports.UserRepository) *RoleService {
	return &RoleService{users: users}
}

func (s *RoleService) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	if email == "" {
		return "", domain.ErrUserNotFound
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	return user.Role.Normalize(), nil
}
