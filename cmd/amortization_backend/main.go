package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/amortization_manager/internal/adapters/database/pgsql"
	"github.com/SscSPs/amortization_manager/internal/adapters/ledger/sap"
	"github.com/SscSPs/amortization_manager/internal/adapters/messaging"
	"github.com/SscSPs/amortization_manager/internal/adapters/messaging/kafka"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/core/services"
	"github.com/SscSPs/amortization_manager/internal/handlers"
	"github.com/SscSPs/amortization_manager/internal/middleware"
	"github.com/SscSPs/amortization_manager/internal/platform/config"
	"github.com/SscSPs/amortization_manager/internal/platform/logging"
	"github.com/SscSPs/amortization_manager/internal/platform/metrics"
	"github.com/SscSPs/amortization_manager/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Amortization Manager API
// @version 1.0
// @description Amortization schedules, installment payments and portfolio reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.InitLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	recorder := metrics.NewRecorder()

	options := []services.AmortizationOption{
		services.WithMetrics(recorder),
		services.WithScheduleConfig(cfg.ScheduleConfig()),
		services.WithMaxAttempts(cfg.Amortization.MaxRetries),
	}

	if cfg.SAP.Enabled {
		ledger, err := sap.NewClient(sap.Config{
			BaseURL:       cfg.SAP.ServiceURL,
			CompanyDB:     cfg.SAP.CompanyDB,
			Username:      cfg.SAP.Username,
			Password:      cfg.SAP.Password,
			DebitAccount:  cfg.SAP.DebitAccount,
			CreditAccount: cfg.SAP.CreditAccount,
			Timeout:       cfg.SAP.Timeout,
			Precision:     cfg.Amortization.CurrencyPrecision,
		}, sap.WithLogger(logger))
		if err != nil {
			logger.Error("Failed to configure SAP client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		options = append(options, services.WithLedgerClient(ledger), services.WithLedgerTimeout(cfg.SAP.Timeout))
		logger.Info("SAP ledger posting enabled", slog.String("service_url", cfg.SAP.ServiceURL))
	}

	publisher, err := newEventPublisher(cfg, logger)
	if err != nil {
		logger.Error("Failed to configure event publisher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("Error closing event publisher", slog.String("error", cerr.Error()))
		}
	}()
	options = append(options, services.WithEventPublisher(publisher))

	serviceContainer := services.NewServiceContainer(pgsql.NewRepositoryProvider(dbPool), options...)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.Metrics(recorder),
		cors.New(corsCfg),
		middleware.RateLimit(limiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteOptions{
		DB:      dbPool,
		Metrics: recorder.Handler(),
	}); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newEventPublisher returns a Kafka publisher when brokers are configured and a logging publisher otherwise.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) (portssvc.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, domain events will only be logged")
		return messaging.NewLogPublisher(logger), nil
	}
	publisher, err := kafka.NewPublisher(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
	if err != nil {
		return nil, err
	}
	logger.Info("Publishing domain events to Kafka", slog.String("topic", cfg.Kafka.Topic))
	return publisher, nil
}
