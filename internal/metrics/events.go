package metrics

import (
	"context"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent,
		event.DigItemChosen,
		event.DigMinigameStarted,
		event.DigCompleted,
		event.DigAbandoned,
		event.DigMoundRaised,
		event.DigMoundLowered,
		event.DigRareFindAnnounce,
		event.DigStreakBonus,
		event.InventoryGrant,
		event.CurrencyDelta,
		event.ExperienceDelta,
		event.PityConsumed,
		event.QuestStateChange,
	)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.DigItemChosen:
		p, err := event.DecodePayload[domain.DigItemChosenPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		ItemsDug.WithLabelValues(p.Result.Rarity.String()).Inc()
		if p.Result.MutationID != "" {
			Mutations.WithLabelValues(p.Result.MutationID).Inc()
		}
		if p.Result.ItemFlags.PityForced {
			PityTriggers.Inc()
		}
		if p.Result.ItemFlags.ShinySpot {
			ShinyHits.Inc()
		}

	case event.DigCompleted:
		p, err := event.DecodePayload[domain.DigCompletedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		result := ResultFailure
		if p.Outcome.Success {
			result = ResultSuccess
		}
		DigsCompleted.WithLabelValues(result).Inc()

	case event.DigAbandoned:
		DigsAbandoned.Inc()

	case event.CurrencyDelta:
		p, err := event.DecodePayload[domain.CurrencyDeltaPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		if p.Gems > 0 {
			GemsAwarded.Add(float64(p.Gems))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
