package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Rushington-dev/staffshield-pro-backend/api/routes"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/analytics"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/auth"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/compliance"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/fleet"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/jobs"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/matching"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/messaging"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/payments"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/realtime"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/users"
	squarewebhook "github.com/Rushington-dev/staffshield-pro-backend/internal/webhooks/square"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/auth/session"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/bigquery"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/config"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/metrics"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/migrate"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pubsub"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/redis"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/square"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager := session.NewManager(redisClient, cfg.JWT.RefreshTokenTTL())

	// Realtime and analytics degrade to no-ops when GCP is not configured.
	var publisher realtime.Publisher = realtime.Noop{}
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Warn(context.Background(), "pubsub unavailable, realtime events disabled")
		} else {
			defer pubsubClient.Close()
			publisher = realtime.NewPublisher(pubsubClient, logg)
		}
	}

	var recorder analytics.Recorder = analytics.Noop{}
	if cfg.GCP.ProjectID != "" {
		bqClient, err := bigquery.NewClient(context.Background(), cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			logg.Warn(context.Background(), "bigquery unavailable, analytics disabled")
		} else {
			defer bqClient.Close()
			recorder = analytics.NewRecorder(bqClient, cfg.BigQuery, logg)
		}
	}

	registry := prometheus.NewRegistry()
	marketplaceMetrics := metrics.NewMarketplaceMetrics(registry)

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	jobsRepo := jobs.NewRepository(gormDB)
	matchingRepo := matching.NewRepository(gormDB)
	fleetRepo := fleet.NewRepository(gormDB)
	complianceRepo := compliance.NewRepository(gormDB)
	messagingRepo := messaging.NewRepository(gormDB)
	paymentsRepo := payments.NewRepository(gormDB)

	authService, err := auth.NewService(usersRepo, dbClient, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	jobsService, err := jobs.NewService(jobsRepo, dbClient, publisher, marketplaceMetrics, recorder)
	if err != nil {
		logg.Error(context.Background(), "failed to create jobs service", err)
		os.Exit(1)
	}
	matchingService, err := matching.NewService(matchingRepo, marketplaceMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create matching service", err)
		os.Exit(1)
	}
	fleetService, err := fleet.NewService(fleetRepo, dbClient, publisher, recorder)
	if err != nil {
		logg.Error(context.Background(), "failed to create fleet service", err)
		os.Exit(1)
	}
	complianceService, err := compliance.NewService(complianceRepo, dbClient, recorder)
	if err != nil {
		logg.Error(context.Background(), "failed to create compliance service", err)
		os.Exit(1)
	}
	messagingService, err := messaging.NewService(messagingRepo, publisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create messaging service", err)
		os.Exit(1)
	}
	webhookService, err := squarewebhook.NewService(paymentsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create square webhook service", err)
		os.Exit(1)
	}

	// Payments stay dark until Square credentials are supplied; the handlers
	// answer 500 "payments service unavailable" in the meantime.
	var squareClient *square.Client
	var paymentsService payments.Service
	if cfg.Square.AccessToken != "" {
		squareClient, err = square.NewClient(context.Background(), cfg.Square, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create square client", err)
			os.Exit(1)
		}
		paymentsService, err = payments.NewService(paymentsRepo, dbClient, squareClient, recorder)
		if err != nil {
			logg.Error(context.Background(), "failed to create payments service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "square not configured, escrow endpoints disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			Registry:      registry,
			Auth:          authService,
			Users:         usersService,
			Jobs:          jobsService,
			Matching:      matchingService,
			Fleet:         fleetService,
			Compliance:    complianceService,
			Messaging:     messagingService,
			Payments:      paymentsService,
			SquareClient:  squareClient,
			SquareWebhook: webhookService,
			WebhookURL:    cfg.Square.WebhookURL,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drain, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drain); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
