// Command api serves the Elite Toolboxes manufacturer REST API.
//
// @title                       Elite Toolboxes Manufacturer API
// @version                     1.0
// @description                 Tools catalogue, orders, reviews, accounts and card payments.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elitetoolboxes/manufacturer-api/internal/api"
	"github.com/elitetoolboxes/manufacturer-api/internal/api/handler"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/service"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/config"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/db/mongo"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/db/redis"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/mail"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/payment"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/queue"
	"github.com/elitetoolboxes/manufacturer-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "manufacturer-api",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("database connected")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("create indexes")
	}
	toolRepo := mongo.NewToolRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	reviewRepo := mongo.NewReviewRepository(db)
	paymentRepo := mongo.NewPaymentRepository(db)

	// --- Notifications ---
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Username: cfg.Mail.SMTPUser,
		Password: cfg.Mail.SenderKey,
	})
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mailer, cfg.Mail.Sender, logger.Component("dispatcher"))
	dispatcher.Start()

	// --- Services ---
	tokens := service.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	roles := service.NewRoleService(userRepo)

	e := api.NewRouter(api.Deps{
		Tokens:   tokens,
		Roles:    roles,
		Users:    service.NewUserService(userRepo, roles, tokens, logger.Component("users")),
		Tools:    service.NewToolService(toolRepo, logger.Component("tools")),
		Orders:   service.NewOrderService(orderRepo, paymentRepo, dispatcher, logger.Component("orders")),
		Reviews:  service.NewReviewService(reviewRepo),
		Payments: service.NewPaymentService(payment.NewStripeGateway(cfg.Payment.StripeSecretKey), redis.NewIntentCache(rdb), logger.Component("payments")),
		Readiness: map[string]handler.PingFunc{
			"mongodb": mongo.Ping(mongoClient),
			"redis":   redis.Ping(rdb),
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("pending confirmation emails abandoned")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("server stopped")
}
