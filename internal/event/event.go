package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Type names an event
type Type string

// Metadata addresses an event. An empty PlayerID marks a world event.
type Metadata struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id,omitempty"`
	Private   bool   `json:"private,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Event is one message on the bus
type Event struct {
	Version  string   `json:"version"`
	Type     Type     `json:"type"`
	Payload  any      `json:"payload"`
	Metadata Metadata `json:"metadata"`
}

// PlayerID returns the player the event concerns, or "" for world events
func (e Event) PlayerID() string {
	return e.Metadata.PlayerID
}

// IsPrivate reports whether the event must only reach its player
func (e Event) IsPrivate() bool {
	return e.Metadata.Private
}

// Dig event types
const (
	DigItemChosen       = Type(domain.EventTypeDigItemChosen)
	DigMinigameStarted  = Type(domain.EventTypeMinigameStarted)
	DigCompleted        = Type(domain.EventTypeDigCompleted)
	DigAbandoned        = Type(domain.EventTypeDigAbandoned)
	DigMoundRaised      = Type(domain.EventTypeMoundRaised)
	DigMoundLowered     = Type(domain.EventTypeMoundLowered)
	DigRareFindAnnounce = Type(domain.EventTypeRareFindAnnounced)
	DigStreakBonus      = Type(domain.EventTypeStreakBonus)

	InventoryGrant   = Type(domain.EventTypeInventoryGrant)
	CurrencyDelta    = Type(domain.EventTypeCurrencyDelta)
	ExperienceDelta  = Type(domain.EventTypeExperienceDelta)
	PityConsumed     = Type(domain.EventTypePityConsumed)
	QuestStateChange = Type(domain.EventTypeQuestStateChanged)
)

func newEvent(eventType Type, md Metadata, payload any) Event {
	md.ID = uuid.NewString()
	md.Timestamp = time.Now().Unix()
	return Event{Version: EventSchemaVersion, Type: eventType, Payload: payload, Metadata: md}
}

// NewPlayerEvent creates an event about one player that others may also see
func NewPlayerEvent(eventType Type, playerID string, payload any) Event {
	return newEvent(eventType, Metadata{PlayerID: playerID}, payload)
}

// NewPrivateEvent creates an event only the acting player may receive
func NewPrivateEvent(eventType Type, playerID string, payload any) Event {
	return newEvent(eventType, Metadata{PlayerID: playerID, Private: true}, payload)
}

// NewWorldEvent creates a public event for every connected client
func NewWorldEvent(eventType Type, payload any) Event {
	return newEvent(eventType, Metadata{}, payload)
}

// Handler handles one event
type Handler func(ctx context.Context, event Event) error

// Bus delivers events to subscribers
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-process Bus. Handlers run synchronously in
// subscription order; one failing or panicking handler does not stop the rest.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewMemoryBus creates an empty bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish runs every handler subscribed to the event's type and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := invoke(ctx, h, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf(ErrMsgHandlersFailed, len(errs), event.Type, errors.Join(errs...))
}

func invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf(ErrMsgHandlerPanicked, r)
		}
	}()
	return h(ctx, event)
}

// Subscribe appends a handler for eventType
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes one handler to several event types
func SubscribeAll(bus Bus, handler Handler, types ...Type) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
