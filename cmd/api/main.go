package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/ooh-agent-backend/api/routes"
	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/internal/inventory"
	"github.com/angelmondragon/ooh-agent-backend/internal/mockups"
	"github.com/angelmondragon/ooh-agent-backend/internal/partners"
	"github.com/angelmondragon/ooh-agent-backend/internal/pdf"
	"github.com/angelmondragon/ooh-agent-backend/internal/pricing"
	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	"github.com/angelmondragon/ooh-agent-backend/internal/seed"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/maps"
	"github.com/angelmondragon/ooh-agent-backend/pkg/metrics"
	"github.com/angelmondragon/ooh-agent-backend/pkg/migrate"
	"github.com/angelmondragon/ooh-agent-backend/pkg/pubsub"
	"github.com/angelmondragon/ooh-agent-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Env:         cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "redis not configured, idempotency replay disabled")
	}

	var (
		pubsubClient   *pubsub.Client
		auditPublisher audit.Publisher
	)
	if cfg.AuditPublishingEnabled() {
		pubsubClient, err = pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		auditPublisher = audit.NewPubSubPublisher(pubsubClient.AuditPublisher())
	}

	collector := metrics.New(prometheus.NewRegistry())
	conn := dbClient.DB()
	invRepo := inventory.NewRepository(conn)
	rates := pricing.RatesFromConfig(cfg.Pricing)
	builder := mockups.NewBuilder(cfg.Mockups)

	auditSvc, err := audit.NewService(audit.ServiceParams{
		Repo:      audit.NewRepository(conn),
		Publisher: auditPublisher,
		Metrics:   collector,
		Logger:    logg,
	})
	requireResource(ctx, logg, "audit service", err)

	inventorySvc, err := inventory.NewService(inventory.ServiceParams{Repo: invRepo, Audit: auditSvc, Logger: logg})
	requireResource(ctx, logg, "inventory service", err)

	partnerSvc, err := partners.NewService(partners.ServiceParams{Repo: partners.NewRepository(conn), Inventory: invRepo})
	requireResource(ctx, logg, "partners service", err)

	pricingSvc, err := pricing.NewService(pricing.ServiceParams{Inventory: invRepo, Rates: rates, Metrics: collector})
	requireResource(ctx, logg, "pricing service", err)

	mockupSvc, err := mockups.NewService(mockups.ServiceParams{Builder: builder, Inventory: invRepo})
	requireResource(ctx, logg, "mockups service", err)

	proposalSvc, err := proposals.NewService(proposals.ServiceParams{
		Repo:      proposals.NewRepository(conn),
		Inventory: invRepo,
		Rates:     rates,
		Mockups:   builder,
		Audit:     auditSvc,
		Logger:    logg,
	})
	requireResource(ctx, logg, "proposals service", err)

	pdfSvc, err := pdf.NewService(pdf.ServiceParams{
		Drafts: proposalSvc,
		Config: cfg.PDF,
		Maps:   maps.NewClient(cfg.GoogleMaps.APIKey),
		Audit:  auditSvc,
		Logger: logg,
	})
	requireResource(ctx, logg, "pdf service", err)

	seedSvc, err := seed.NewService(seed.ServiceParams{DB: conn, Logger: logg})
	requireResource(ctx, logg, "seed service", err)

	deps := routes.Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        dbClient,
		Redis:     redisClient,
		Metrics:   collector,
		Inventory: inventorySvc,
		Partners:  partnerSvc,
		Pricing:   pricingSvc,
		Proposals: proposalSvc,
		Mockups:   mockupSvc,
		PDF:       pdfSvc,
		Audit:     auditSvc,
		Seed:      seedSvc,
	}
	if pubsubClient != nil {
		deps.PubSub = pubsubClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"addr":         addr,
		"db_dialect":   dbClient.Dialect(),
		"admin_routes": routes.AdminRoutesEnabled(cfg),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
	logg.Info(ctx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
