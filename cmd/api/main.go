package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/trampo-app/trampo/docs"
	"github.com/trampo-app/trampo/internal/api/handlers"
	"github.com/trampo-app/trampo/internal/api/middleware"
	"github.com/trampo-app/trampo/internal/api/router"
	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/email"
	"github.com/trampo-app/trampo/internal/payments"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/validator"
	"github.com/trampo-app/trampo/internal/ratelimit"
	"github.com/trampo-app/trampo/internal/repository/postgres"
	"github.com/trampo-app/trampo/internal/services"
	"github.com/trampo-app/trampo/internal/storage"
	"github.com/trampo-app/trampo/internal/worker"
	"github.com/trampo-app/trampo/migrations"
)

// @title Trampo API
// @version 1.0
// @description Marketplace connecting service providers and employers
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"driver":      cfg.Database.Driver,
	}).Info("Starting trampo API server")

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.ErrorWithErr(err, "Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(db, migrations.Files)
	if err != nil {
		log.ErrorWithErr(err, "Failed to run migrations")
		os.Exit(1)
	}
	log.Infof("Applied %d migrations", applied)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	highlightRepo := postgres.NewHighlightRepository(db)
	adRepo := postgres.NewAdRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	vagaRepo := postgres.NewVagaRepository(db)
	candidaturaRepo := postgres.NewCandidaturaRepository(db)
	favoritaRepo := postgres.NewFavoritaRepository(db)
	eventRepo := postgres.NewPaymentEventRepository(db)

	// Integrations
	mailer := email.New(cfg.Email, log)

	gateway := payments.NewGateway(cfg.Stripe)
	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn("STRIPE_WEBHOOK_SECRET not set, webhooks are disabled")
	}

	var webhookIPs *payments.AllowList
	if cfg.Stripe.EnforceWebhookIPs {
		webhookIPs = payments.NewAllowList(payments.StripeWebhookIPs)
	}

	var store storage.Store
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			log.ErrorWithErr(err, "Failed to initialize object storage")
			os.Exit(1)
		}
		store = s3Store
	} else {
		log.Warn("Object storage not configured, uploads are disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := newRateLimiter(ctx, cfg.Redis, log)

	// Initialize services
	notifier := services.NewNotifier(mailer, userRepo, cfg.Server.AppBaseURL, log)
	userService := services.NewUserService(userRepo, notifier, cfg.Auth.BCryptCost, log)
	sessionService := services.NewSessionService(userService, tokenRepo, cfg.Auth, log)
	planService := services.NewPlanService(planRepo, log)
	highlightService := services.NewHighlightService(highlightRepo)
	adService := services.NewAdService(adRepo)
	searchService := services.NewSearchService(userRepo, highlightRepo, log)
	vagaService := services.NewVagaService(vagaRepo, userRepo, log)
	candidaturaService := services.NewCandidaturaService(candidaturaRepo, vagaRepo, userRepo, notifier, log)
	favoritaService := services.NewFavoritaService(favoritaRepo, vagaRepo)
	uploadService := services.NewUploadService(store, cfg.Storage.MaxUploadBytes, log)
	checkoutService := services.NewCheckoutService(gateway, planRepo, userRepo, vagaRepo, services.CheckoutConfig{
		AppBaseURL:         cfg.Server.AppBaseURL,
		JobBoostPriceCents: cfg.Stripe.JobBoostPriceCents,
	}, log)
	webhookService := services.NewWebhookService(gateway, eventRepo, map[payment.PurchaseType]payment.Fulfiller{
		payment.TypeHighlight: services.NewHighlightFulfiller(planRepo, highlightRepo),
		payment.TypeAd:        services.NewAdFulfiller(planRepo, adRepo),
		payment.TypeJobBoost:  services.NewJobBoostFulfiller(vagaRepo),
	}, notifier, log)

	if err := planService.Seed(ctx); err != nil {
		log.ErrorWithErr(err, "Failed to seed highlight plans")
		os.Exit(1)
	}

	// Background maintenance
	if cfg.Maintenance.Enabled {
		maintenance, err := worker.NewMaintenance(eventRepo, cfg.Maintenance.Schedule, cfg.Maintenance.PaymentEventsRetention, log)
		if err != nil {
			log.ErrorWithErr(err, "Invalid maintenance schedule")
			os.Exit(1)
		}
		go maintenance.Start(ctx)
	}

	readiness := []handlers.ReadinessCheck{{Name: "database", Required: true, Check: db.PingContext}}
	if redisStore, ok := limiter.(*ratelimit.RedisStore); ok {
		readiness = append(readiness, handlers.ReadinessCheck{Name: "redis", Check: redisStore.Ping})
	}

	// Initialize handlers
	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(log, readiness...),
		Auth:        handlers.NewAuthHandler(sessionService, userService, cfg.Auth, log, val),
		Profile:     handlers.NewProfileHandler(userService, highlightService, log, val),
		Catalog:     handlers.NewCatalogHandler(planService, highlightService, adService, categoryRepo, log),
		Search:      handlers.NewSearchHandler(searchService, log),
		Vaga:        handlers.NewVagaHandler(vagaService, favoritaService, log, val),
		Candidatura: handlers.NewCandidaturaHandler(candidaturaService, log, val),
		Payment:     handlers.NewPaymentHandler(checkoutService, webhookService, log, val),
		Upload:      handlers.NewUploadHandler(uploadService, log),
	}

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		log.ErrorWithErr(err, "Invalid trusted proxy list")
		os.Exit(1)
	}

	r := router.New(cfg, log, router.Deps{
		RateLimiter:    limiter,
		TrustedProxies: trustedProxies,
		WebhookIPs:     webhookIPs,
	}, h)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.ErrorWithErr(err, "Server error")
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.ErrorWithErr(err, "Graceful shutdown failed")
			_ = srv.Close()
		}
		log.Info("Server stopped")
	}
}

// newRateLimiter uses Redis when it is enabled and reachable, otherwise an
// in-process store
func newRateLimiter(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) ratelimit.Store {
	if cfg.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			log.Infof("Rate limiting backed by Redis at %s", cfg.Addr())
			return ratelimit.NewRedisStore(client)
		}
		log.WithError(err).Warn("Redis unreachable, using in-memory rate limiting")
		_ = client.Close()
	}

	store := ratelimit.NewMemoryStore()
	go store.RunCleanup(ctx, 10*time.Minute)
	return store
}
