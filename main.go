package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/database"
	server "github.com/mauv0809/pitchside/internal/http"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier/slack"
	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/storage"
	"github.com/mauv0809/pitchside/internal/waitlist"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	store, storeTeardown := openStorage(cfg)
	defer func() {
		log.Info("Closing storage")
		storeTeardown()
	}()
	storageInitDuration := time.Since(startTime)
	log.Info("Storage initialization time recorded", "driver", cfg.Storage.Driver, "duration_ms", storageInitDuration.Milliseconds())

	// Google Pub/Sub when a project is configured, otherwise everything
	// stays in-process and the event handler consumes the local bus.
	var bus pubsub.PubSubClient
	var local *pubsub.Local
	if cfg.ProjectID != "" {
		bus = pubsub.New(cfg.ProjectID)
	} else {
		local = pubsub.NewLocal()
		bus = local
	}
	defer bus.Close()

	book := reservation.New(store, cfg.Storage.ReservationKey, metricsSvc)
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token)
	service := booking.New(book, pitch.New(), waitlist.New(store), backendClient, bus, metricsSvc)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	events := booking.NewEventHandler(service, notifier, bus, cfg.Slack.DryRun)

	s := server.NewServer(service, events, notifier, metricsHandler, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if local != nil {
		go func() {
			if err := events.Consume(ctx, local); err != nil {
				log.Error("Event consumer stopped", "error", err)
			}
		}()
	}
	go func() {
		syncCtx, syncCancel := context.WithTimeout(ctx, 30*time.Second)
		defer syncCancel()
		if _, err := service.SyncFromBackend(syncCtx); err != nil {
			log.Warn("Initial backend sync failed, serving local state", "error", err)
		}
	}()

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// openStorage connects the configured storage driver.
func openStorage(cfg config.Config) (storage.Store, func()) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := storage.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %s", err)
		}
		return storage.NewRedis(client), func() { client.Close() }
	default:
		db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			log.Fatalf("Failed to initialize database: %s", err)
		}
		return storage.New(db), dbTeardown
	}
}
