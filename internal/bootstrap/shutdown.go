package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/scheduler"
	"github.com/osse101/DigSite_Go/internal/server"
	"github.com/osse101/DigSite_Go/internal/session"
	"github.com/osse101/DigSite_Go/internal/sse"
	"github.com/osse101/DigSite_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	SessionService     session.Service
	Workers            *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Stores             *Stores
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in this order:
// 1. HTTP server (stop accepting new requests)
// 2. Reaper ticks and the session service (cancel pending mound callbacks)
// 3. Worker pool and SSE hub
// 4. Event publisher (flush pending events to ensure consistency)
// 5. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.SessionService != nil {
		shutdownService(ctx, ServiceNameSession, components.SessionService)
	}
	if components.Workers != nil {
		components.Workers.Stop()
	}
	if components.Hub != nil {
		components.Hub.Stop()
	}

	// Shutdown resilient publisher last to flush pending events
	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Stores != nil {
		components.Stores.Close()
	}

	slog.Info(LogMsgServerStopped)
}

// shutdownService is a helper that shuts down a service and logs any errors.
type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
