package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront-backend/config"
	"storefront-backend/internal/api"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/database"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/payments"
	"storefront-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Connect(ctx, cfg.MongoURL, cfg.DatabaseName)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			logg.Warn("disconnect store", zap.Error(err))
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	logg.Info("connected to store", zap.String("database", cfg.DatabaseName), zap.Bool("transactions", cfg.UseTransactions))

	timeout := cfg.StoreTimeout
	tx := services.NewTxRunner(store.Client, cfg.UseTransactions)

	users := services.NewUserService(store.DB, timeout)
	carts := services.NewCartService(store.DB, timeout)

	var provider payments.IntentCreator
	if cfg.StripeSecretKey != "" {
		provider = payments.NewStripeClient(cfg.StripeSecretKey)
	} else {
		logg.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	authorizer := auth.NewAuthorizer(users)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(
		api.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
			Logger:         logg,
		},
		middleware.NewAuthMiddleware(tokens, authorizer),
		api.Handlers{
			Users:    api.NewUserHandler(users, tokens, authorizer),
			Products: api.NewProductHandler(services.NewProductService(store.DB, timeout)),
			Carts:    api.NewCartHandler(carts),
			Wishlist: api.NewWishlistHandler(services.NewWishlistService(store.DB, carts, tx, timeout)),
			Blogs:    api.NewBlogHandler(services.NewBlogService(store.DB, timeout)),
			Reviews:  api.NewReviewHandler(services.NewReviewService(store.DB, timeout)),
			Payments: api.NewPaymentHandler(services.NewPaymentService(store.DB, carts, tx, provider, cfg.Currency, timeout)),
			Stats:    api.NewStatsHandler(services.NewAnalyticsService(store.DB, timeout)),
			Store:    store,
		},
	)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server listening", zap.String("addr", server.Addr), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logg.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
