// Package memory implements the repository ports in process memory. It backs
// the service and router tests and mirrors the filters of the Mongo
// repositories so both behave the same for the same calls.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// Store holds every collection behind a single mutex.
type Store struct {
	mu       sync.Mutex
	users    map[string]*domain.User // keyed by email
	tools    map[string]*domain.Tool
	orders   map[string]*domain.Order
	reviews  []*domain.Review
	payments []*domain.Payment

	// Err, when set, is returned by every operation.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*domain.User),
		tools:  make(map[string]*domain.Tool),
		orders: make(map[string]*domain.Order),
	}
}

// newID returns a 24-character hex id, the same shape as a Mongo ObjectID.
func newID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func validID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// Users exposes the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

type UserRepository struct{ s *Store }

// PutUser seeds an account directly, bypassing upsert rules.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	s.users[u.Email] = &u
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepository) Upsert(_ context.Context, email string, p domain.Profile) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	u, ok := r.s.users[email]
	res := &domain.WriteResult{Acknowledged: true}
	if !ok {
		u = &domain.User{ID: newID(), Email: email, Role: domain.RoleUser}
		r.s.users[email] = u
		res.UpsertedCount = 1
		res.UpsertedID = u.ID
	} else {
		res.MatchedCount = 1
		res.ModifiedCount = 1
	}
	applyProfile(u, p)
	return res, nil
}

func applyProfile(u *domain.User, p domain.Profile) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&u.Name, p.Name)
	set(&u.Phone, p.Phone)
	set(&u.Location, p.Location)
	set(&u.Education, p.Education)
	set(&u.LinkedIn, p.LinkedIn)
	set(&u.Image, p.Image)
}

func (r *UserRepository) SetRole(_ context.Context, email string, role domain.Role) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	res := &domain.WriteResult{Acknowledged: true, MatchedCount: 1}
	if u.Role != role {
		u.Role = role
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *UserRepository) DeleteByID(_ context.Context, id string) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	for email, u := range r.s.users {
		if u.ID == id {
			delete(r.s.users, email)
			return &domain.WriteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Tools
// ---------------------------------------------------------------------------

func (s *Store) Tools() *ToolRepository { return &ToolRepository{s: s} }

type ToolRepository struct{ s *Store }

func (r *ToolRepository) List(_ context.Context) ([]*domain.Tool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*domain.Tool, 0, len(r.s.tools))
	for _, t := range r.s.tools {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ToolRepository) FindByID(_ context.Context, id string) (*domain.Tool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	t, ok := r.s.tools[id]
	if !ok {
		return nil, domain.ErrToolNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *ToolRepository) Create(_ context.Context, t *domain.Tool) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	clone := *t
	clone.ID = newID()
	r.s.tools[clone.ID] = &clone
	return &domain.WriteResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

func (r *ToolRepository) Update(_ context.Context, id string, u domain.ToolUpdate) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	t, ok := r.s.tools[id]
	if !ok {
		return nil, domain.ErrToolNotFound
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Image != nil {
		t.Image = *u.Image
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.MinimumOrder != nil {
		t.MinimumOrder = *u.MinimumOrder
	}
	if u.AvailableQuantity != nil {
		t.AvailableQuantity = *u.AvailableQuantity
	}
	return &domain.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *ToolRepository) DeleteByID(_ context.Context, id string) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	if _, ok := r.s.tools[id]; !ok {
		return nil, domain.ErrToolNotFound
	}
	delete(r.s.tools, id)
	return &domain.WriteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }

type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(_ context.Context, o *domain.Order) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	clone := *o
	clone.ID = newID()
	r.s.orders[clone.ID] = &clone
	return &domain.WriteResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *OrderRepository) ListByEmail(_ context.Context, email string) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.Email == email })
}

func (r *OrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	return r.list(func(*domain.Order) bool { return true })
}

func (r *OrderRepository) list(keep func(*domain.Order) bool) ([]*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*domain.Order{}
	for _, o := range r.s.orders {
		if keep(o) {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepository) MarkPaid(_ context.Context, id, transactionID string) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Paid {
		return nil, domain.ErrInvalidTransition
	}
	o.Paid = true
	o.TransactionID = transactionID
	o.Status = domain.OrderPending
	return &domain.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.CurrentStatus() != from {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = to
	return &domain.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *OrderRepository) DeleteByID(_ context.Context, id string) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	if _, ok := r.s.orders[id]; !ok {
		return nil, domain.ErrOrderNotFound
	}
	delete(r.s.orders, id)
	return &domain.WriteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// ---------------------------------------------------------------------------
// Reviews and payments
// ---------------------------------------------------------------------------

func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s: s} }

type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) List(_ context.Context) ([]*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*domain.Review, 0, len(r.s.reviews))
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		clone := *r.s.reviews[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *ReviewRepository) Create(_ context.Context, rv *domain.Review) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	clone := *rv
	clone.ID = newID()
	r.s.reviews = append(r.s.reviews, &clone)
	return &domain.WriteResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{s: s} }

type PaymentRepository struct{ s *Store }

func (r *PaymentRepository) Create(_ context.Context, p *domain.Payment) (*domain.WriteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	clone := *p
	clone.ID = newID()
	r.s.payments = append(r.s.payments, &clone)
	return &domain.WriteResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

// PaymentsFor returns the stored payments of an order.
func (s *Store) PaymentsFor(orderID string) []domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out
}
