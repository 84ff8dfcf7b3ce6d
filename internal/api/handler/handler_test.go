package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/authctx"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

type stubUserService struct {
	ports.UserService
	upsertFn func(ctx context.Context, email string, p domain.Profile) (*ports.UpsertResult, error)
}

func (s *stubUserService) Upsert(ctx context.Context, email string, p domain.Profile) (*ports.UpsertResult, error) {
	return s.upsertFn(ctx, email, p)
}

type stubPaymentService struct {
	email string
	price float64
	key   string
	calls int
}

func (s *stubPaymentService) CreateIntent(_ context.Context, who domain.Identity, price float64, key string) (string, error) {
	s.calls++
	s.email, s.price, s.key = who.Email, price, key
	return "secret_123", nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestUserHandler_Upsert_PassesProfile(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		upsertFn: func(ctx context.Context, email string, p domain.Profile) (*ports.UpsertResult, error) {
			if email != "ann@x.io" || p.Name != "Ann" || p.LinkedIn != "in/ann" {
				t.Fatalf("unexpected args: %s %+v", email, p)
			}
			return &ports.UpsertResult{Result: &domain.WriteResult{Acknowledged: true, UpsertedCount: 1}, Token: "tok"}, nil
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/user/ann@x.io", strings.NewReader(`{"name":"Ann","linkedin":"in/ann","role":"admin"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("ann@x.io")

	if err := h.Upsert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	result, ok := resp["result"].(map[string]any)
	if !ok || result["acknowledged"] != true {
		t.Fatalf("unexpected result payload: %+v", resp["result"])
	}
}

func TestPaymentHandler_ForwardsIdempotencyKey(t *testing.T) {
	e := newEcho()
	stub := &stubPaymentService{}
	h := NewPaymentHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":19.99}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "checkout-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authctx.SetIdentity(c, domain.Identity{Email: "ann@x.io"})

	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.email != "ann@x.io" || stub.price != 19.99 || stub.key != "checkout-1" {
		t.Fatalf("unexpected args: %q %v %q", stub.email, stub.price, stub.key)
	}
	if !strings.Contains(rec.Body.String(), `"clientSecret":"secret_123"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPaymentHandler_RejectsPriceAboveLimit(t *testing.T) {
	e := newEcho()
	stub := &stubPaymentService{}
	h := NewPaymentHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":1e18}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	authctx.SetIdentity(c, domain.Identity{Email: "ann@x.io"})

	err := h.CreateIntent(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if msg := fmt.Sprint(he.Message); !strings.Contains(msg, "price must be at most 999999.99") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if stub.calls != 0 {
		t.Fatalf("service should not be called, got %d calls", stub.calls)
	}
}

func TestPathID(t *testing.T) {
	e := newEcho()
	cases := map[string]bool{
		"64b7f0c2a1b2c3d4e5f60718": true,
		"64b7f0c2a1b2c3d4e5f6071":  false,
		"zzzzzzzzzzzzzzzzzzzzzzzz": false,
		"":                         false,
	}
	for id, ok := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(id)

		_, err := pathID(c)
		if ok && err != nil {
			t.Errorf("%q: unexpected error %v", id, err)
		}
		if !ok {
			he, isHTTP := err.(*echo.HTTPError)
			if !isHTTP || he.Code != http.StatusBadRequest {
				t.Errorf("%q: expected 400, got %v", id, err)
			}
		}
	}
}

func TestRequester_MissingIdentity(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := requester(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
