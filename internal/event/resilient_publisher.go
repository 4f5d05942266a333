package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/DigSite_Go/internal/logger"
)

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps an event Bus with retry and dead-letter queuing.
// A failed publish is retried in the background with exponential backoff;
// exhausted or overflowing events are appended to the dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// PublishWithRetry publishes immediately and queues the event for retry on failure.
// It never blocks on the retry queue.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	select {
	case p.retryQueue <- retryEntry{event: evt, attempt: 1, lastErr: err}:
	default:
		logger.FromContext(ctx).Error(LogMsgRetryQueueFull, "event_type", evt.Type)
		p.writeDeadLetter(evt, 1, err)
	}
}

// Publish satisfies Bus. Failures are handled asynchronously so it always returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

func (p *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	for entry.attempt <= p.maxRetries {
		select {
		case <-time.After(CalculateRetryDelay(p.retryDelay, entry.attempt)):
		case <-p.shutdown:
			p.finalAttempt(ctx, entry)
			return
		}

		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
		entry.lastErr = err
		entry.attempt++
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt)
	p.writeDeadLetter(entry.event, entry.attempt, entry.lastErr)
}

// drain gives every queued event one last immediate attempt
func (p *ResilientPublisher) drain() {
	ctx := context.Background()
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.finalAttempt(ctx, entry)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) finalAttempt(ctx context.Context, entry retryEntry) {
	if err := p.bus.Publish(ctx, entry.event); err != nil {
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type, "error", err)
		p.writeDeadLetter(entry.event, entry.attempt+1, err)
	}
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", evt.Type, "error", err)
	}
}

// Shutdown stops the retry worker after draining the queue
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}
