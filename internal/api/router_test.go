package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/handler"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/service"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/db/memory"
)

const testSecret = "test-secret"

type recordingNotifier struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (n *recordingNotifier) NotifyOrderPlaced(order domain.Order) <-chan error {
	n.mu.Lock()
	n.orders = append(n.orders, order)
	n.mu.Unlock()
	done := make(chan error, 1)
	done <- n.err
	close(done)
	return done
}

type fakeGateway struct {
	calls int
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency, _ string) (*domain.PaymentIntent, error) {
	g.calls++
	return &domain.PaymentIntent{
		ID:           fmt.Sprintf("pi_%d", g.calls),
		ClientSecret: fmt.Sprintf("pi_%d_secret", g.calls),
		AmountCents:  amount,
		Currency:     currency,
	}, nil
}

type mapCache map[string]domain.CachedIntent

func (m mapCache) Get(_ context.Context, key string) (domain.CachedIntent, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapCache) Put(_ context.Context, key string, intent domain.CachedIntent) error {
	if _, ok := m[key]; !ok {
		m[key] = intent
	}
	return nil
}

type testEnv struct {
	e        *echo.Echo
	store    *memory.Store
	tokens   *service.TokenService
	notifier *recordingNotifier
	gateway  *fakeGateway
	ready    error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	tokens := service.NewTokenService(testSecret, time.Hour)
	roles := service.NewRoleService(store.Users())
	env := &testEnv{
		store:    store,
		tokens:   tokens,
		notifier: &recordingNotifier{},
		gateway:  &fakeGateway{},
	}

	env.e = NewRouter(Deps{
		Tokens:   tokens,
		Roles:    roles,
		Users:    service.NewUserService(store.Users(), roles, tokens, log),
		Tools:    service.NewToolService(store.Tools(), log),
		Orders:   service.NewOrderService(store.Orders(), store.Payments(), env.notifier, log),
		Reviews:  service.NewReviewService(store.Reviews()),
		Payments: service.NewPaymentService(env.gateway, mapCache{}, log),
		Readiness: map[string]handler.PingFunc{
			"mongodb": func(context.Context) error { return env.ready },
		},
		Registry: prometheus.NewRegistry(),
		Logger:   log,
	})

	store.PutUser(domain.User{Email: "admin@x.io", Role: domain.RoleAdmin})
	store.PutUser(domain.User{Email: "user@x.io", Role: domain.RoleUser})
	return env
}

func (env *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := env.tokens.Issue(email)
	require.NoError(t, err)
	return tok
}

// do sends a request; token "" sends no Authorization header.
func (env *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// checkout posts a payment intent request carrying an Idempotency-Key.
func (env *testEnv) checkout(t *testing.T, email, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+env.token(t, email))
	req.Header.Set("Idempotency-Key", key)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestRouter_Banner(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}

func TestRouter_CredentialChecks(t *testing.T) {
	env := newTestEnv(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "admin@x.io",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized access", errorOf(t, rec))

	rec = env.do(t, http.MethodGet, "/orders", "garbage", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", errorOf(t, rec))

	rec = env.do(t, http.MethodGet, "/orders", expiredToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminGuard(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/user", env.token(t, "user@x.io"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	// Exactly one JSON document is written.
	assert.Equal(t, "forbidden access", errorOf(t, rec))

	rec = env.do(t, http.MethodGet, "/user", env.token(t, "ghost@x.io"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/user", env.token(t, "admin@x.io"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.User](t, rec), 2)
}

func TestRouter_AdminGuardStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.Err = errors.New("connection reset")

	rec := env.do(t, http.MethodGet, "/orders", env.token(t, "admin@x.io"), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorOf(t, rec))
}

func TestRouter_DemotionTakesEffectImmediately(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "admin@x.io")
	env.store.PutUser(domain.User{Email: "boss@x.io", Role: domain.RoleAdmin})
	boss := env.token(t, "boss@x.io")

	rec := env.do(t, http.MethodGet, "/orders", boss, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/users/admin/boss@x.io", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Same token, new role.
	rec = env.do(t, http.MethodGet, "/orders", boss, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for i := 0; i < 2; i++ {
		rec = env.do(t, http.MethodPut, "/user/admin/user@x.io", admin, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/admin/user@x.io", "", "")
	assert.True(t, decode[map[string]bool](t, rec)["admin"])

	rec = env.do(t, http.MethodPut, "/user/admin/ghost@x.io", admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UpsertIssuesTokenAndIgnoresRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/user/new@x.io", "", `{"name":"New","role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Result domain.WriteResult `json:"result"`
		Token  string             `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Result.Acknowledged)
	assert.EqualValues(t, 1, body.Result.UpsertedCount)
	require.NotEmpty(t, body.Token)
	id, err := env.tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", id.Email)

	rec = env.do(t, http.MethodGet, "/admin/new@x.io", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[map[string]bool](t, rec)["admin"])

	rec = env.do(t, http.MethodGet, "/user/new@x.io", body.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", decode[domain.User](t, rec).Name)

	rec = env.do(t, http.MethodGet, "/user/user@x.io", body.Token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/user/not-an-email", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminQueryMiss(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/admin/ghost@x.io", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", errorOf(t, rec))
}

func TestRouter_ToolLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "admin@x.io")

	rec := env.do(t, http.MethodPost, "/tool", env.token(t, "user@x.io"), `{"name":"Hammer","price":12}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/tool", admin, `{"name":"","price":12}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/tool", admin, `{"name":"Hammer","price":12,"minimum_order":10,"available_quantity":500}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[domain.WriteResult](t, rec).InsertedID
	require.Len(t, id, 24)

	rec = env.do(t, http.MethodPut, "/tool/"+id, admin, `{"price":15}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/tool/"+id, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tool := decode[domain.Tool](t, rec)
	assert.Equal(t, "Hammer", tool.Name)
	assert.Equal(t, 15.0, tool.Price)

	rec = env.do(t, http.MethodGet, "/tool", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Tool](t, rec), 1)

	rec = env.do(t, http.MethodDelete, "/tool/"+id, admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[domain.WriteResult](t, rec).DeletedCount)

	rec = env.do(t, http.MethodDelete, "/tool/"+id, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MalformedIDs(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "admin@x.io")

	for _, tc := range []struct{ method, path, token string }{
		{http.MethodGet, "/tool/xyz", ""},
		{http.MethodDelete, "/tool/xyz", admin},
		{http.MethodDelete, "/user/xyz", admin},
		{http.MethodDelete, "/orders/xyz", admin},
		{http.MethodGet, "/order/xyz", admin},
	} {
		rec := env.do(t, tc.method, tc.path, tc.token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_OrderFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.token(t, "user@x.io")
	admin := env.token(t, "admin@x.io")

	order := `{"name":"Ann","email":"user@x.io","tool_name":"Hammer","quantity":100,"price":1200,"date":"2024-05-01"}`
	rec := env.do(t, http.MethodPost, "/order", "", order)
	require.Equal(t, http.StatusOK, rec.Code)
	var placed struct {
		Success bool               `json:"success"`
		Result  domain.WriteResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.True(t, placed.Success)
	id := placed.Result.InsertedID
	require.NotEmpty(t, id)
	require.Len(t, env.notifier.orders, 1)
	assert.Equal(t, id, env.notifier.orders[0].ID)

	rec = env.do(t, http.MethodGet, "/order?email=user@x.io", user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Order](t, rec), 1)

	rec = env.do(t, http.MethodGet, "/order?email=user@x.io", admin, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/order/"+id, admin, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/orders/"+id+"/ship", admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPatch, "/order/"+id, user, `{"transactionId":"pi_123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.store.PaymentsFor(id), 1)

	rec = env.do(t, http.MethodPatch, "/order/"+id, user, `{"transactionId":"pi_456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPut, "/orders/"+id+"/ship", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/order/"+id, user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Order](t, rec)
	assert.Equal(t, domain.OrderShipped, got.Status)
	assert.Equal(t, "pi_123", got.TransactionID)

	rec = env.do(t, http.MethodGet, "/orders", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Order](t, rec), 1)

	rec = env.do(t, http.MethodDelete, "/orders/"+id, admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodDelete, "/orders/"+id, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_OrderSucceedsWhenNotificationFails(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = errors.New("smtp down")

	rec := env.do(t, http.MethodPost, "/order", "", `{"email":"user@x.io","tool_name":"Hammer","quantity":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Len(t, env.notifier.orders, 1)

	rec = env.do(t, http.MethodPost, "/order", "", `{"email":"user@x.io","tool_name":"Hammer","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, env.notifier.orders, 1)
}

func TestRouter_Reviews(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/review", "", `{"rating":5,"comment":"great"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/review", env.token(t, "user@x.io"), `{"name":"Ann","rating":6,"comment":"great"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/review", env.token(t, "user@x.io"), `{"name":"Ann","rating":5,"comment":"great"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/review", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	reviews := decode[[]domain.Review](t, rec)
	require.Len(t, reviews, 1)
	assert.Equal(t, "user@x.io", reviews[0].Email)
}

func TestRouter_PaymentIntent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/create-payment-intent", "", `{"price":12.5}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/create-payment-intent", env.token(t, "user@x.io"), `{"price":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/create-payment-intent", env.token(t, "user@x.io"), `{"price":12.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pi_1_secret", decode[map[string]string](t, rec)["clientSecret"])
	assert.Equal(t, 1, env.gateway.calls)

	rec = env.do(t, http.MethodPost, "/create-payment-intent", env.token(t, "user@x.io"), `{"price":1e18}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "price must be at most 999999.99", errorOf(t, rec))
	assert.Equal(t, 1, env.gateway.calls)
}

func TestRouter_PaymentIntentKeyIsPerUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.checkout(t, "admin@x.io", "checkout-1", `{"price":999}`)
	require.Equal(t, http.StatusOK, rec.Code)
	adminSecret := decode[map[string]string](t, rec)["clientSecret"]

	rec = env.checkout(t, "user@x.io", "checkout-1", `{"price":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	userSecret := decode[map[string]string](t, rec)["clientSecret"]

	assert.NotEqual(t, adminSecret, userSecret)
	assert.Equal(t, 2, env.gateway.calls)

	rec = env.checkout(t, "user@x.io", "checkout-1", `{"price":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userSecret, decode[map[string]string](t, rec)["clientSecret"])
	assert.Equal(t, 2, env.gateway.calls)
}

func TestRouter_PaymentIntentKeyReusedWithNewAmount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.checkout(t, "user@x.io", "checkout-1", `{"price":999}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.checkout(t, "user@x.io", "checkout-1", `{"price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "different amount")
	assert.Equal(t, 1, env.gateway.calls)
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	env.ready = errors.New("no primary")
	rec = env.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no primary")

	rec = env.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
