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

	"prepaid-card-backend/internal/client"
	"prepaid-card-backend/internal/config"
	"prepaid-card-backend/internal/logger"
	"prepaid-card-backend/internal/metrics"
	"prepaid-card-backend/internal/model"
	"prepaid-card-backend/internal/repository"
	"prepaid-card-backend/internal/server"
	"prepaid-card-backend/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("prepaid-card-backend stopped")
	}
}

func run() error {
	// load .env into os.Environ
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "prepaid-card-backend",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})
	ctx := context.Background()
	if envErr != nil {
		logg.Info(ctx, "no .env file found (ok in prod)")
	}

	app := newApplication(cfg, logg)
	defer app.close()

	logg.Info(logg.WithFields(ctx, map[string]any{
		"address":          cfg.Address(),
		"payment_provider": string(app.provider),
	}), "starting HTTP server")

	serverErr := make(chan error, 1)
	go func() {
		if err := app.server.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}
	logg.Info(ctx, "signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	return nil
}

type application struct {
	server   *server.Server
	db       *gorm.DB
	provider model.PaymentProvider
}

// newApplication wires storage, gateways, services and routes. A database that
// cannot be opened is logged and the API keeps serving; storage calls then
// report STORAGE_UNAVAILABLE.
func newApplication(cfg *config.Config, logg *logger.Logger) *application {
	ctx := context.Background()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		logg.Error(ctx, "database unavailable, continuing without storage", err)
		db = nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	purchaseRepo := repository.NewPurchaseRepository(db)
	diagnosticsRepo := repository.NewDiagnosticsRepository(db)

	mockGateway := service.NewMockGateway(purchaseRepo)
	gateway := mockGateway
	if cfg.PaymentProvider() == model.PaymentProviderStripe {
		gateway = service.NewStripeGateway(client.NewStripeClient(&cfg.Stripe), cfg.Pricing.Currency)
	}

	purchaseService := service.NewPurchaseService(service.PurchaseServiceParams{
		Pricing:      cfg.PricingConfig(),
		FrontendURL:  cfg.FrontendURL,
		PurchaseRepo: purchaseRepo,
		Gateway:      gateway,
		Fallback:     mockGateway,
		Notifier:     service.NewLogNotifier(logg),
		Logger:       logg,
		Metrics:      appMetrics,
	})
	healthService := service.NewHealthService(diagnosticsRepo, cfg.Database)

	// Init HTTP server
	srv := server.NewServer(server.Params{
		PurchaseService: purchaseService,
		HealthService:   healthService,
		Logger:          logg,
		Gatherer:        reg,
	})

	return &application{
		server:   srv,
		db:       db,
		provider: gateway.Provider(),
	}
}

func (a *application) close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
