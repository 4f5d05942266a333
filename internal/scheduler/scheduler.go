// Package scheduler runs periodic maintenance, such as reaping expired dig
// sessions, on the shared worker pool.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/worker"
)

const LogMsgTickSkipped = "Scheduled job skipped, worker queue full"

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler enqueues named jobs at fixed intervals
type Scheduler struct {
	pool     Enqueuer
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a scheduler feeding pool
func New(pool Enqueuer) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule runs job every interval, first firing one interval from now.
// A tick that finds the queue full is counted and dropped so a slow pool
// never backs up the ticker. Calls after Stop are ignored.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	if s.ctx.Err() != nil || interval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick(name, job)
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) tick(name string, job worker.Job) {
	if s.pool.TryEnqueue(job) {
		metrics.ScheduledRuns.WithLabelValues(name, metrics.ResultSuccess).Inc()
		return
	}
	metrics.ScheduledRuns.WithLabelValues(name, metrics.ResultSkipped).Inc()
	slog.Default().Warn(LogMsgTickSkipped, "job", name)
}

// Stop halts every ticker and waits for them to exit. Safe to call twice.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(s.cancel)
	s.wg.Wait()
}
