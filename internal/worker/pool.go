// Package worker runs deferred dig callbacks and maintenance jobs on a fixed
// set of goroutines fed by a bounded queue.
package worker

import (
	"context"
	"sync"

	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/metrics"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool is a fixed-size worker pool. Jobs receive a context that is cancelled
// by Stop.
type Pool struct {
	size     int
	queue    chan Job
	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a pool of size workers reading from a queue of queueSize
func NewPool(size, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		size:   max(size, 1),
		queue:  make(chan Job, max(queueSize, 0)),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.loop()
	}
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.queue:
			metrics.WorkerQueueDepth.Set(float64(len(p.queue)))
			p.run(job)
		case <-p.done:
			return
		}
	}
}

// run executes one job; a panic is logged and the worker survives
func (p *Pool) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerJobs.WithLabelValues(metrics.ResultPanic).Inc()
			logger.Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	if err := job.Process(p.ctx); err != nil {
		metrics.WorkerJobs.WithLabelValues(metrics.ResultFailure).Inc()
		logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed, "error", err)
		return
	}
	metrics.WorkerJobs.WithLabelValues(metrics.ResultSuccess).Inc()
}

// Enqueue blocks until job is queued. After Stop the job is dropped.
func (p *Pool) Enqueue(job Job) {
	select {
	case p.queue <- job:
		metrics.WorkerQueueDepth.Set(float64(len(p.queue)))
	case <-p.done:
	}
}

// TryEnqueue queues job without blocking and reports whether it was accepted
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.done:
		return false
	default:
	}

	select {
	case p.queue <- job:
		metrics.WorkerQueueDepth.Set(float64(len(p.queue)))
		return true
	default:
		logger.Warn(LogMsgQueueFull)
		return false
	}
}

// Stop cancels running jobs' context, stops the workers and waits for them.
// Queued jobs that have not started are discarded. Safe to call twice.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.cancel()
	})
	p.wg.Wait()
}
