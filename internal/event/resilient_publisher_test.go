package event

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/testing/leaktest"
)

var errBusDown = errors.New("bus down")

// flakyBus fails the first failures publishes of every event id
type flakyBus struct {
	mu       sync.Mutex
	failures int
	calls    map[string][]time.Time
	total    int
}

func newFlakyBus(failures int) *flakyBus {
	return &flakyBus{failures: failures, calls: make(map[string][]time.Time)}
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total++
	b.calls[evt.Metadata.ID] = append(b.calls[evt.Metadata.ID], time.Now())
	if b.failures < 0 || len(b.calls[evt.Metadata.ID]) <= b.failures {
		return errBusDown
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) attempts(evt Event) []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.calls[evt.Metadata.ID]...)
}

func (b *flakyBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

func deadLetterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func streakEvent(playerID string) Event {
	return NewPrivateEvent(DigStreakBonus, playerID, domain.StreakBonusPayload{PlayerID: playerID, Streak: 4, Gems: 8})
}

func shutdown(t *testing.T, rp *ResilientPublisher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))
}

func TestResilientPublisher_DeliversFirstTime(t *testing.T) {
	path := deadLetterPath(t)
	bus := newFlakyBus(0)
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	evt := streakEvent("p1")
	rp.PublishWithRetry(context.Background(), evt)
	shutdown(t, rp)

	assert.Len(t, bus.attempts(evt), 1)
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	path := deadLetterPath(t)
	bus := newFlakyBus(2)
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)
	defer shutdown(t, rp)

	evt := streakEvent("p1")
	rp.PublishWithRetry(context.Background(), evt)

	assert.Eventually(t, func() bool { return len(bus.attempts(evt)) == 3 }, time.Second, 5*time.Millisecond)

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_ExhaustedRetriesAreDeadLettered(t *testing.T) {
	path := deadLetterPath(t)
	bus := newFlakyBus(-1)
	rp, err := NewResilientPublisher(bus, 3, 5*time.Millisecond, path)
	require.NoError(t, err)

	evt := streakEvent("p7")
	rp.PublishWithRetry(context.Background(), evt)

	require.Eventually(t, func() bool { return len(bus.attempts(evt)) == 4 }, time.Second, 5*time.Millisecond,
		"initial publish plus three retries")
	shutdown(t, rp)

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, "p7", entry.PlayerID)
	assert.Equal(t, DigStreakBonus, entry.Event.Type)
	assert.Equal(t, evt.Metadata.ID, entry.Event.Metadata.ID)
	assert.True(t, entry.Event.IsPrivate())
	assert.Equal(t, 4, entry.Attempts)
	assert.Equal(t, errBusDown.Error(), entry.LastError)

	replayed, err := DecodePayload[domain.StreakBonusPayload](entry.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, 8, replayed.Gems)
}

func TestResilientPublisher_FullQueueGoesStraightToDeadLetter(t *testing.T) {
	path := deadLetterPath(t)
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// no retry worker, so the queue only drains at shutdown
	rp := &ResilientPublisher{
		bus:        newFlakyBus(-1),
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), streakEvent("flood"))
	}

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, 1, e.Attempts)
	}
	require.NoError(t, dl.Close())
}

func TestResilientPublisher_ShutdownFlushesPendingRetries(t *testing.T) {
	path := deadLetterPath(t)
	bus := newFlakyBus(1)

	leaktest.CheckNoGoroutineLeak(t, func() {
		rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
		require.NoError(t, err)

		events := []Event{streakEvent("a"), streakEvent("b"), streakEvent("c")}
		for _, evt := range events {
			rp.PublishWithRetry(context.Background(), evt)
		}
		shutdown(t, rp)

		for _, evt := range events {
			assert.Len(t, bus.attempts(evt), 2, "failed once, then flushed at shutdown")
		}
	})

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	bus := newFlakyBus(3)
	base := 40 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, base, deadLetterPath(t))
	require.NoError(t, err)
	defer shutdown(t, rp)

	evt := streakEvent("p1")
	rp.PublishWithRetry(context.Background(), evt)

	require.Eventually(t, func() bool { return len(bus.attempts(evt)) == 4 }, 2*time.Second, 5*time.Millisecond)
	at := bus.attempts(evt)

	first := at[1].Sub(at[0])
	second := at[2].Sub(at[1])
	third := at[3].Sub(at[2])
	assert.GreaterOrEqual(t, first, base)
	assert.GreaterOrEqual(t, second, 2*base)
	assert.GreaterOrEqual(t, third, 4*base)
	assert.Greater(t, third, second)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := newFlakyBus(0)
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)

	const players, digs = 10, 5
	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < digs; j++ {
				rp.PublishWithRetry(context.Background(), NewPlayerEvent(DigCompleted, "p", nil))
			}
		}()
	}
	wg.Wait()
	shutdown(t, rp)

	assert.Equal(t, players*digs, bus.count())
}

func TestResilientPublisher_ShutdownTimeout(t *testing.T) {
	rp, err := NewResilientPublisher(newFlakyBus(0), 3, time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)
	rp.wg.Add(1) // simulate a worker that never returns
	defer rp.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rp.Shutdown(ctx), context.Canceled)
}
