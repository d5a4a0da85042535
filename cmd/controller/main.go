// Package main is the entry point for the launchplane controller.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchplane/internal/config"
	"launchplane/internal/controller"
	"launchplane/internal/events"
	"launchplane/internal/launches"
	"launchplane/internal/logger"
	"launchplane/internal/observability"
	"launchplane/internal/planets"
	"launchplane/internal/sequence"
	"launchplane/internal/spacex"
	"launchplane/internal/store"
	"launchplane/internal/store/memory"
	"launchplane/internal/store/postgres"
	"launchplane/internal/syncer"
)

// backend is what a store must provide to run the controller.
type backend interface {
	store.LaunchStore
	store.PlanetCatalog
	store.PlanetWriter
	sequence.Allocator
	Ping(ctx context.Context) error
}

func main() {
	// Parse flags
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	configPath := flag.String("config", "", "Path to config file (default: launchplane.yaml in current directory)")
	flag.Parse()

	// Load Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, *migrateFlag, log); err != nil {
		log.Error("controller stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server exited properly")
}

func run(cfg *config.Config, migrate bool, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, closeDB, err := openStore(ctx, cfg, migrate, log)
	if err != nil {
		return err
	}
	defer closeDB()

	// Tracing
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:     "launchplane-controller",
		CollectorAddr:   cfg.OTELEndpoint,
		StoreBackend:    cfg.Store,
		SequenceBackend: cfg.SequenceBackend,
	})
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn("failed to shutdown tracer", "error", err)
		}
	}()

	// Metrics
	metricsHandler, shutdownMetrics, err := observability.InitMetrics()
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			log.Warn("failed to shutdown metrics", "error", err)
		}
	}()
	if err := observability.RegisterLaunchGauge(db); err != nil {
		log.Warn("failed to register launch gauge", "error", err)
	}

	// Planet catalog
	n, err := planets.LoadFile(ctx, cfg.PlanetsFile, db)
	if err != nil {
		return fmt.Errorf("failed to load planets: %w", err)
	}
	log.Info("habitable planets loaded", "count", n, "file", cfg.PlanetsFile)

	// Flight number allocation
	var allocator sequence.Allocator = db
	if cfg.SequenceBackend == config.SequenceRedis {
		client, err := sequence.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		allocator = sequence.NewRedisAllocator(client, sequence.DefaultKey, db)
		log.Info("using redis flight number allocator")
	}

	// Events
	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL, cfg.NATSSubjectPrefix, log)
		if err != nil {
			return err
		}
		defer nc.Close()
		publisher = nc
		log.Info("publishing launch events", "url", cfg.NATSURL)
	}

	svc, err := launches.New(launches.Deps{
		Launches:  db,
		Planets:   db,
		Allocator: allocator,
		Provider:  spacex.NewClient(cfg.SpaceXAPIURL, cfg.ImportTimeout),
		Events:    publisher,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	// The API serves stored data even when the provider is unreachable.
	if _, err := svc.EnsureLoaded(ctx); err != nil {
		log.Error("failed to load launch data", "error", err)
	}

	// Background re-import
	if cfg.SyncInterval > 0 {
		agent := syncer.New(svc, syncer.Config{Interval: cfg.SyncInterval}, log)
		go agent.Run(ctx)
		defer func() {
			stop()
			<-agent.Done()
		}()
	}

	// Start Server
	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv, err := controller.New(controller.Options{
		Addr:             addr,
		Service:          svc,
		DB:               db,
		Logger:           log,
		Metrics:          metricsHandler,
		DefaultPageLimit: cfg.DefaultPageLimit,
	})
	if err != nil {
		return err
	}

	log.Info("launchplane controller starting", "addr", addr)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// openStore connects the configured backend and returns it with its cleanup.
func openStore(ctx context.Context, cfg *config.Config, migrate bool, log *slog.Logger) (backend, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := postgres.New(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if migrate {
		log.Info("running database migrations")
		version, err := postgres.Migrate(db.DB())
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrations completed", "version", version)
	}

	return db, func() { db.Close() }, nil
}
