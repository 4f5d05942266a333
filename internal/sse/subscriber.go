package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/DigSite_Go/internal/event"
)

// StreamedTypes are the bus events forwarded to SSE clients
var StreamedTypes = []event.Type{
	event.DigItemChosen,
	event.DigMinigameStarted,
	event.DigCompleted,
	event.DigAbandoned,
	event.DigMoundRaised,
	event.DigMoundLowered,
	event.DigRareFindAnnounce,
	event.DigStreakBonus,
	event.PityConsumed,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	event.SubscribeAll(s.bus, s.handleEvent, StreamedTypes...)

	names := make([]string, 0, len(StreamedTypes))
	for _, t := range StreamedTypes {
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscriberReady, "types", names)
}

// handleEvent forwards private events to their player's streams only
func (s *Subscriber) handleEvent(_ context.Context, evt event.Event) error {
	recipient := ""
	if evt.IsPrivate() {
		recipient = evt.PlayerID()
	}
	s.hub.Send(recipient, string(evt.Type), evt.Payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"player_id", evt.PlayerID(),
		"private", evt.IsPrivate())
	return nil
}
