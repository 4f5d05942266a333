package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
)

func receive(t *testing.T, c *Client) (Event, bool) {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		return evt, true
	case <-time.After(100 * time.Millisecond):
		return Event{}, false
	}
}

func mustRegister(t *testing.T, hub *Hub, playerID string, types []string) *Client {
	t.Helper()
	c, err := hub.Register(playerID, types)
	require.NoError(t, err)
	return c
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func TestHub_PrivateEventsReachOnlyRecipient(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	alice := mustRegister(t, hub, "alice", nil)
	bob := mustRegister(t, hub, "bob", nil)
	watcher := mustRegister(t, hub, "", nil)
	waitForClients(t, hub, 3)

	hub.Send("alice", "dig.item_chosen", "secret")

	evt, ok := receive(t, alice)
	require.True(t, ok)
	assert.Equal(t, "secret", evt.Payload)

	_, ok = receive(t, bob)
	assert.False(t, ok)
	_, ok = receive(t, watcher)
	assert.False(t, ok, "anonymous streams never see private events")
}

func TestHub_BroadcastHonorsTypeFilter(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	rare := mustRegister(t, hub, "", []string{string(event.DigRareFindAnnounce)})
	all := mustRegister(t, hub, "", nil)
	waitForClients(t, hub, 2)

	hub.Broadcast(string(event.DigMoundRaised), nil)
	hub.Broadcast(string(event.DigRareFindAnnounce), nil)

	evt, ok := receive(t, rare)
	require.True(t, ok)
	assert.Equal(t, string(event.DigRareFindAnnounce), evt.Type)

	first, _ := receive(t, all)
	second, _ := receive(t, all)
	assert.Equal(t, string(event.DigMoundRaised), first.Type)
	assert.Equal(t, string(event.DigRareFindAnnounce), second.Type)
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	alice := mustRegister(t, hub, "alice", nil)
	bob := mustRegister(t, hub, "bob", nil)
	waitForClients(t, hub, 2)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewPrivateEvent(event.DigItemChosen, "alice",
		domain.DigItemChosenPayload{Recipient: "alice"})))
	require.NoError(t, bus.Publish(ctx, event.NewWorldEvent(event.DigRareFindAnnounce,
		domain.RareFindPayload{PlayerID: "alice", ItemID: "meteorite"})))

	evt, ok := receive(t, alice)
	require.True(t, ok)
	assert.Equal(t, string(event.DigItemChosen), evt.Type)

	evt, ok = receive(t, bob)
	require.True(t, ok)
	assert.Equal(t, string(event.DigRareFindAnnounce), evt.Type, "bob only sees the announcement")
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := mustRegister(t, hub, "p", nil)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, open := <-c.EventChannel
	assert.False(t, open)
}

func TestHub_RegisterAfterStop(t *testing.T) {
	hub := NewHub()
	hub.Start()
	hub.Stop()

	_, err := hub.Register("p", nil)
	assert.ErrorIs(t, err, ErrHubStopped)
}

func TestHub_UnregisterClosesOnlyThatStream(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	phone := mustRegister(t, hub, "alice", nil)
	laptop := mustRegister(t, hub, "alice", nil)

	hub.Unregister(phone.ID)
	hub.Unregister(phone.ID)
	_, open := <-phone.EventChannel
	assert.False(t, open)

	hub.Send("alice", "dig.completed", nil)
	_, ok := receive(t, laptop)
	assert.True(t, ok, "the player's other stream still receives private events")
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHandler_StreamsConnectedThenEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?player_id=alice&types=dig.completed,%20dig.abandoned", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)

	readEvent := func() (string, string) {
		var typ, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				typ = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "":
				return typ, data
			}
		}
	}

	typ, data := readEvent()
	assert.Equal(t, EventTypeConnected, typ)
	assert.Contains(t, data, `"player_id":"alice"`)
	waitForClients(t, hub, 1)

	hub.Send("alice", "dig.item_chosen", "filtered out")
	hub.Send("alice", "dig.completed", map[string]bool{"success": true})

	typ, data = readEvent()
	assert.Equal(t, "dig.completed", typ)
	assert.Contains(t, data, `"success":true`)
}

func TestSplitTypes(t *testing.T) {
	assert.Nil(t, splitTypes(""))
	assert.Equal(t, []string{"a", "b"}, splitTypes("a, ,b,"))
}
