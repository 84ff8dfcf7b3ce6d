package domain

import (
	"errors"
	"testing"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderUnpaid, OrderPending, true},
		{OrderPending, OrderShipped, true},
		{OrderUnpaid, OrderShipped, false},
		{OrderShipped, OrderPending, false},
		{OrderPending, OrderUnpaid, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestOrder_CurrentStatus_Legacy(t *testing.T) {
	if s := (&Order{}).CurrentStatus(); s != OrderUnpaid {
		t.Fatalf("expected unpaid, got %s", s)
	}
	if s := (&Order{Paid: true}).CurrentStatus(); s != OrderPending {
		t.Fatalf("expected pending, got %s", s)
	}
	if s := (&Order{Status: OrderShipped, Paid: true}).CurrentStatus(); s != OrderShipped {
		t.Fatalf("expected shipped, got %s", s)
	}
}

func TestRole_Normalize(t *testing.T) {
	if Role("").Normalize() != RoleUser {
		t.Fatal("empty role should be user")
	}
	if Role("superuser").Normalize() != RoleUser {
		t.Fatal("unknown role should be user")
	}
	if RoleAdmin.Normalize() != RoleAdmin {
		t.Fatal("admin should stay admin")
	}
}

func TestNotFoundErrorsWrapErrNotFound(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrToolNotFound, ErrOrderNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should wrap ErrNotFound", err)
		}
	}
	if errors.Is(ErrUserNotFound, ErrToolNotFound) {
		t.Error("distinct not-found errors must not match each other")
	}
}
