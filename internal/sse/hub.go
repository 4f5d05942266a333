package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DigSite_Go/internal/metrics"
)

// ErrHubStopped is returned when registering after Stop
var ErrHubStopped = errors.New("sse hub stopped")

// Event is one message on the stream. A non-empty Recipient limits delivery
// to the streams opened for that player.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Recipient string `json:"-"`
	Payload   any    `json:"payload"`
}

// WriteTo writes the event in text/event-stream framing
func (e Event) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}
	n, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data)
	return int64(n), err
}

// Client is one open stream
type Client struct {
	ID           string
	PlayerID     string
	EventChannel chan Event
	// nil means every type
	EventFilter map[string]bool
}

func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// Hub fans events out to open streams. Public events go to every client;
// private events only to the recipient's clients.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	byPlayer map[string]map[string]*Client
	stopped  bool

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a hub; call Start before sending
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		byPlayer: make(map[string]map[string]*Client),
		events:   make(chan Event, BroadcastBufferSize),
		done:     make(chan struct{}),
	}
}

// Start runs the delivery loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends delivery and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		h.stopped = true
		for id, c := range h.clients {
			close(c.EventChannel)
			delete(h.clients, id)
		}
		h.byPlayer = make(map[string]map[string]*Client)
		h.mu.Unlock()
		metrics.SSEClients.Set(0)
	})
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case evt := <-h.events:
			h.deliver(evt)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := h.clients
	if evt.Recipient != "" {
		targets = h.byPlayer[evt.Recipient]
	}
	for _, c := range targets {
		if !c.wants(evt.Type) {
			continue
		}
		select {
		case c.EventChannel <- evt:
		default:
			metrics.SSEEventsDropped.WithLabelValues(DropReasonSlowClient).Inc()
		}
	}
}

// Register opens a stream. An empty playerID receives public events only.
func (h *Hub) Register(playerID string, eventTypes []string) (*Client, error) {
	c := &Client{
		ID:           uuid.New().String(),
		PlayerID:     playerID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			c.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return nil, ErrHubStopped
	}
	h.clients[c.ID] = c
	if playerID != "" {
		if h.byPlayer[playerID] == nil {
			h.byPlayer[playerID] = make(map[string]*Client)
		}
		h.byPlayer[playerID][c.ID] = c
	}
	metrics.SSEClients.Set(float64(len(h.clients)))
	return c, nil
}

// Unregister closes a stream; unknown ids are ignored
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	if peers := h.byPlayer[c.PlayerID]; peers != nil {
		delete(peers, clientID)
		if len(peers) == 0 {
			delete(h.byPlayer, c.PlayerID)
		}
	}
	close(c.EventChannel)
	metrics.SSEClients.Set(float64(len(h.clients)))
}

// Broadcast queues a public event
func (h *Hub) Broadcast(eventType string, payload any) {
	h.Send("", eventType, payload)
}

// Send queues an event for recipient's streams, or for everyone when
// recipient is empty. A full queue drops the event.
func (h *Hub) Send(recipient, eventType string, payload any) {
	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Recipient: recipient,
		Payload:   payload,
	}
	select {
	case h.events <- evt:
	default:
		metrics.SSEEventsDropped.WithLabelValues(DropReasonQueueFull).Inc()
		slog.Warn(LogMsgEventDropped, "event_type", eventType, "private", recipient != "")
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
