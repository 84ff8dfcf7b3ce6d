package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.ToolRepository    = (*ToolRepository)(nil)
	_ ports.OrderRepository   = (*OrderRepository)(nil)
	_ ports.ReviewRepository  = (*ReviewRepository)(nil)
	_ ports.PaymentRepository = (*PaymentRepository)(nil)
)

func TestUpsertKeepsRoleAndNonEmptyFields(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	s.PutUser(domain.User{Email: "a@x.io", Role: domain.RoleAdmin, Name: "Ann"})

	res, err := s.Users().Upsert(ctx, "a@x.io", domain.Profile{Phone: "555"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)

	u, err := s.Users().FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "555", u.Phone)
}

func TestOrderIDsAreValidated(t *testing.T) {
	s := NewStore()
	_, err := s.Orders().FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = s.Orders().FindByID(context.Background(), newID())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
