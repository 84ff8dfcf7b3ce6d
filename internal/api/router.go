package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/elitetoolboxes/manufacturer-api/docs"
	"github.com/elitetoolboxes/manufacturer-api/internal/api/handler"
	"github.com/elitetoolboxes/manufacturer-api/internal/api/middleware"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs. They are built once in
// main and shared across requests.
type Deps struct {
	Tokens   ports.TokenService
	Roles    ports.RoleAuthority
	Users    ports.UserService
	Tools    ports.ToolService
	Orders   ports.OrderService
	Reviews  ports.ReviewService
	Payments ports.PaymentService

	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.PingFunc
	// Registry receives the HTTP metrics; nil uses the default registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "toolbox",
		Registerer: registerer,
	}))

	auth := middleware.Auth(d.Tokens)
	admin := middleware.RequireAdmin(d.Roles, d.Logger)

	tools := handler.NewToolHandler(d.Tools)
	users := handler.NewUserHandler(d.Users)
	orders := handler.NewOrderHandler(d.Orders)
	reviews := handler.NewReviewHandler(d.Reviews)
	payments := handler.NewPaymentHandler(d.Payments)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Elite Toolboxes manufacturer API is running")
	})

	// --- Tools ---
	e.GET("/tool", tools.List)
	e.GET("/tool/:id", tools.Get)
	e.POST("/tool", tools.Create, auth, admin)
	e.PUT("/tool/:id", tools.Update, auth, admin)
	e.DELETE("/tool/:id", tools.Delete, auth, admin)

	// --- Users & roles ---
	e.GET("/user", users.List, auth, admin)
	e.GET("/user/:email", users.Profile, auth)
	e.PUT("/user/:email", users.Upsert)
	e.DELETE("/user/:id", users.Delete, auth, admin)
	e.GET("/admin/:email", users.IsAdmin)
	e.PUT("/user/admin/:email", users.Promote, auth, admin)
	e.PUT("/users/admin/:email", users.Demote, auth, admin)

	// --- Orders ---
	e.POST("/order", orders.Place)
	e.GET("/order", orders.ListMine, auth)
	e.GET("/order/:id", orders.Get, auth)
	e.PATCH("/order/:id", orders.RecordPayment, auth)
	e.GET("/orders", orders.List, auth, admin)
	e.PUT("/orders/:id/ship", orders.Ship, auth, admin)
	e.DELETE("/orders/:id", orders.Delete, auth, admin)

	// --- Reviews ---
	e.GET("/review", reviews.List)
	e.POST("/review", reviews.Create, auth)

	// --- Payments ---
	e.POST("/create-payment-intent", payments.CreateIntent, auth)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
