package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/testing/leaktest"
)

func counting(n *atomic.Int32) Job {
	return JobFunc(func(context.Context) error {
		n.Add(1)
		return nil
	})
}

func TestPool_RunsEveryJob(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(3, 16)
	pool.Start()
	defer pool.Stop()

	for i := 0; i < 10; i++ {
		pool.Enqueue(counting(&executed))
	}

	assert.Eventually(t, func() bool { return executed.Load() == 10 }, time.Second, 5*time.Millisecond)
}

func TestPool_FailingAndPanickingJobsKeepWorkerAlive(t *testing.T) {
	panicsBefore := testutil.ToFloat64(metrics.WorkerJobs.WithLabelValues(metrics.ResultPanic))
	failsBefore := testutil.ToFloat64(metrics.WorkerJobs.WithLabelValues(metrics.ResultFailure))

	var executed atomic.Int32
	pool := NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("boom") }))
	pool.Enqueue(JobFunc(func(context.Context) error { panic("worse") }))
	pool.Enqueue(counting(&executed))

	require.Eventually(t, func() bool { return executed.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, panicsBefore+1, testutil.ToFloat64(metrics.WorkerJobs.WithLabelValues(metrics.ResultPanic)))
	assert.Equal(t, failsBefore+1, testutil.ToFloat64(metrics.WorkerJobs.WithLabelValues(metrics.ResultFailure)))
}

func TestPool_TryEnqueue(t *testing.T) {
	noop := JobFunc(func(context.Context) error { return nil })
	pool := NewPool(1, 1)

	// not started, so the single slot fills up
	assert.True(t, pool.TryEnqueue(noop))
	assert.False(t, pool.TryEnqueue(noop))

	pool.Stop()
	assert.False(t, pool.TryEnqueue(noop))
	pool.Enqueue(noop) // must not block after Stop
}

func TestPool_StopCancelsJobContext(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}))

	<-started
	pool.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("Stop returned before the running job saw cancellation")
	}
}

func TestPool_StopJoinsWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, 8)
		pool.Start()
		pool.Enqueue(JobFunc(func(context.Context) error { return nil }))
		pool.Stop()
	})
}
