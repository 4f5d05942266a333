package sse

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler streams hub events to one client. ?player_id= subscribes to that
// player's private events and ?types= narrows the stream to a comma list.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		playerID := q.Get(QueryParamPlayerID)
		eventTypes := splitTypes(q.Get(QueryParamTypes))

		client, err := hub.Register(playerID, eventTypes)
		if err != nil {
			if errors.Is(err, ErrHubStopped) {
				http.Error(w, ErrMsgShuttingDown, http.StatusServiceUnavailable)
				return
			}
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}
		log := slog.With("client_id", client.ID, "player_id", playerID)
		log.Info(LogMsgClientConnected, "filters", eventTypes, "total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "total_clients", hub.ClientCount())
		}()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")

		write := func(evt Event) bool {
			if _, err := evt.WriteTo(w); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload: ConnectedPayload{
				ClientID: client.ID,
				PlayerID: playerID,
				Filters:  eventTypes,
			},
		}
		if !write(hello) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case evt, open := <-client.EventChannel:
				if !open {
					return
				}
				if !write(evt) {
					return
				}
			case now := <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: now.Unix()}) {
					return
				}
			}
		}
	}
}

// ConnectedPayload opens every stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	PlayerID string   `json:"player_id,omitempty"`
	Filters  []string `json:"filters,omitempty"`
}

func splitTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
