package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hoardwatch/ingestor/internal/adapter"
	"github.com/hoardwatch/ingestor/internal/config"
	"github.com/hoardwatch/ingestor/internal/logger"
	"github.com/hoardwatch/ingestor/internal/marketplace"
	"github.com/hoardwatch/ingestor/internal/notify"
	"github.com/hoardwatch/ingestor/internal/reconcile"
	"github.com/hoardwatch/ingestor/internal/scheduler"
	"github.com/hoardwatch/ingestor/internal/store"
	"github.com/hoardwatch/ingestor/internal/trade"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadIngestorConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "ingestor",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting ingestor")

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("dbname", cfg.Database.DBName))

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Marketplace.HTTPTimeout)

	dispatcher := notify.NewDispatcher(httpClient, clock, notify.Config{
		DealsURL:       cfg.Webhook.DealsURL,
		TradesURL:      cfg.Webhook.TradesURL,
		OperationalURL: cfg.Webhook.OperationalURL,
		Username:       cfg.Webhook.Username,
		AvatarURL:      cfg.Webhook.AvatarURL,
	})

	client := marketplace.NewClient(httpClient, clock, dispatcher,
		cfg.Marketplace.BaseURL, cfg.Marketplace.CatalogURL, cfg.Marketplace.UserAgent)

	pairer := trade.NewPairer(dataStore, clock)
	engine := reconcile.NewEngine(client, dataStore, pairer, dispatcher, clock, reconcile.Config{
		PageLimit:      cfg.Marketplace.PageLimit,
		InterPageDelay: cfg.Reconcile.InterPageDelay,
		InterItemDelay: cfg.Reconcile.InterItemDelay,
	})

	sched := scheduler.New(engine, cfg.Reconcile.CycleInterval, clock)

	errChan := make(chan error, 1)
	go func() {
		if err := sched.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.Error(err)
	}

	// Stop schedules no further cycle; the one in flight completes.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	cancel()

	logger.Info("Ingestor stopped")
}

// openDatabase connects to PostgreSQL, retrying with exponential backoff so
// a briefly unavailable database does not kill the service at boot.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB

	operation := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = 2 * time.Minute

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("database connect failed after retries: %w", err)
	}

	return db, nil
}
