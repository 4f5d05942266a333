// Package sequencer runs fire-and-forget delayed callbacks for visual dig
// effects. Each callback carries the session generation it was scheduled for
// and is skipped if that generation has ended by the time it fires.
package sequencer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/worker"
)

// Token identifies the session a callback belongs to
type Token struct {
	PlayerID   string
	Generation uint64
}

// Guard reports whether the session named by a token is still live
type Guard func(Token) bool

// Callback is the deferred work
type Callback func(ctx context.Context) error

// Sequencer schedules guarded callbacks onto a worker pool
type Sequencer struct {
	pool  *worker.Pool
	guard Guard

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
	closed bool
	wg     sync.WaitGroup
}

// New creates a sequencer dispatching onto pool
func New(pool *worker.Pool, guard Guard) *Sequencer {
	return &Sequencer{
		pool:   pool,
		guard:  guard,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// After schedules fn to run once delay has elapsed. It returns uuid.Nil when
// the sequencer has been shut down.
func (s *Sequencer) After(delay time.Duration, token Token, fn Callback) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return uuid.Nil
	}

	id := uuid.New()
	s.wg.Add(1)
	s.timers[id] = time.AfterFunc(delay, func() { s.fire(id, token, fn) })
	return id
}

// Cancel stops a pending callback. It reports false if the callback already fired.
func (s *Sequencer) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	if timer.Stop() {
		s.wg.Done()
		return true
	}
	return false
}

// Pending returns the number of callbacks whose timers have not fired
func (s *Sequencer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Sequencer) fire(id uuid.UUID, token Token, fn Callback) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	job := worker.JobFunc(func(ctx context.Context) error {
		defer s.wg.Done()
		if !s.guard(token) {
			metrics.StaleCallbacks.Inc()
			logger.FromContext(ctx).Debug(LogMsgStaleCallback,
				LogFieldPlayerID, token.PlayerID,
				LogFieldGeneration, token.Generation)
			return nil
		}
		return fn(ctx)
	})

	if !s.pool.TryEnqueue(job) {
		s.wg.Done()
		logger.Warn(LogMsgCallbackDropped, LogFieldPlayerID, token.PlayerID, LogFieldCallbackID, id)
	}
}

// Shutdown cancels pending timers and waits for in-flight callbacks
func (s *Sequencer) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	s.mu.Lock()
	s.closed = true
	for id, timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
			log.Debug(LogMsgCancelledCallback, LogFieldCallbackID, id)
		}
	}
	s.timers = make(map[uuid.UUID]*time.Timer)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
