package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/pity"
	"github.com/osse101/DigSite_Go/internal/player"
	"github.com/osse101/DigSite_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Players  *player.Directory
	Ledger   *player.CollectionLedger
	Pity     pity.Service
	Hub      *sse.Hub
}

// RegisterEventHandlers sets up all event handlers and subscribers:
// the metrics collector, the player directory and collection ledger, the pity
// quest listener and the SSE bridge.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	player.Register(deps.EventBus, deps.Players, deps.Ledger)
	pity.Register(deps.EventBus, deps.Pity)
	slog.Info(LogMsgCollaboratorsRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	}
	return nil
}
