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

	"github.com/joho/godotenv"

	"github.com/osse101/DigSite_Go/internal/bootstrap"
	"github.com/osse101/DigSite_Go/internal/config"
	"github.com/osse101/DigSite_Go/internal/dig"
	"github.com/osse101/DigSite_Go/internal/mound"
	"github.com/osse101/DigSite_Go/internal/pity"
	"github.com/osse101/DigSite_Go/internal/player"
	"github.com/osse101/DigSite_Go/internal/scheduler"
	"github.com/osse101/DigSite_Go/internal/server"
	"github.com/osse101/DigSite_Go/internal/session"
	"github.com/osse101/DigSite_Go/internal/shiny"
	"github.com/osse101/DigSite_Go/internal/sse"
	"github.com/osse101/DigSite_Go/internal/utils"
	"github.com/osse101/DigSite_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load .env before validating so the schema check sees file-provided values
	_ = godotenv.Load()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)
	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("DigSite exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, tuning, err := bootstrap.LoadGameData(cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	stores, err := bootstrap.InitializeStores(ctx, cfg)
	if err != nil {
		return err
	}

	players := player.NewDirectory()
	ledger := player.NewCollectionLedger(stores.Progress)
	pitySvc := pity.NewService(stores.Pity, tuning.Pity)

	hub := sse.NewHub()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: bus,
		Players:  players,
		Ledger:   ledger,
		Pity:     pitySvc,
		Hub:      hub,
	}); err != nil {
		stores.Close()
		return err
	}

	engine, err := dig.NewEngine(tuning.Dig, cat, utils.NewSeededSource(uint64(time.Now().UnixNano())))
	if err != nil {
		stores.Close()
		return err
	}

	workers := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	workers.Start()

	sessions, err := session.NewService(tuning.Session, session.Deps{
		Engine:    engine,
		Catalog:   cat,
		Players:   players,
		Pity:      pitySvc,
		Progress:  stores.Progress,
		Spots:     shiny.NewRegistry(cat.Spots()),
		Mounds:    mound.NewPool(cfg.MoundSlots),
		Workers:   workers,
		Publisher: publisher,
	})
	if err != nil {
		workers.Stop()
		stores.Close()
		return err
	}

	sched := scheduler.New(workers)
	sched.Schedule("reap_expired_digs", cfg.ReapInterval, worker.JobFunc(func(ctx context.Context) error {
		n, err := sessions.ReapExpired(ctx)
		if n > 0 {
			slog.Info("Reaped expired dig sessions", "count", n)
		}
		return err
	}))

	hub.Start()

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		DBPool:     stores.DBPool(),
		Sessions:   sessions,
		Players:    players,
		Objectives: pitySvc,
		Hub:        hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	slog.Info("DigSite started",
		"port", cfg.Port,
		"storage", cfg.Storage,
		"mound_slots", cfg.MoundSlots,
		"environment", cfg.Environment)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		SessionService:     sessions,
		Workers:            workers,
		Hub:                hub,
		ResilientPublisher: publisher,
		Stores:             stores,
	})
	return runErr
}
