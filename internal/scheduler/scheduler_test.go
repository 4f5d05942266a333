package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/testing/leaktest"
	"github.com/osse101/DigSite_Go/internal/worker"
)

// fullQueue rejects every job
type fullQueue struct{ attempts atomic.Int32 }

func (f *fullQueue) TryEnqueue(worker.Job) bool {
	f.attempts.Add(1)
	return false
}

func TestScheduler_RunsRepeatedly(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	ran := make(chan struct{}, 10)
	sched.Schedule("reap", 10*time.Millisecond, worker.JobFunc(func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatalf("job ran %d times before timeout", i)
		}
	}
}

func TestScheduler_FullQueueSkipsTick(t *testing.T) {
	q := &fullQueue{}
	before := testutil.ToFloat64(metrics.ScheduledRuns.WithLabelValues("skip-test", metrics.ResultSkipped))

	sched := New(q)
	sched.Schedule("skip-test", 5*time.Millisecond, worker.JobFunc(func(context.Context) error { return nil }))

	require.Eventually(t, func() bool { return q.attempts.Load() >= 2 }, time.Second, 5*time.Millisecond)
	sched.Stop()

	after := testutil.ToFloat64(metrics.ScheduledRuns.WithLabelValues("skip-test", metrics.ResultSkipped))
	assert.GreaterOrEqual(t, after-before, 2.0)
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	q := &fullQueue{}
	sched := New(q)
	sched.Schedule("halt", 2*time.Millisecond, worker.JobFunc(func(context.Context) error { return nil }))

	require.Eventually(t, func() bool { return q.attempts.Load() > 0 }, time.Second, time.Millisecond)
	sched.Stop()
	sched.Stop()

	seen := q.attempts.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, seen, q.attempts.Load(), "no ticks after Stop")
}

func TestScheduler_IgnoresScheduleAfterStopAndBadInterval(t *testing.T) {
	q := &fullQueue{}
	sched := New(q)
	sched.Schedule("zero", 0, worker.JobFunc(func(context.Context) error { return nil }))
	sched.Stop()
	sched.Schedule("late", time.Millisecond, worker.JobFunc(func(context.Context) error { return nil }))

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, q.attempts.Load())
}

func TestScheduler_StopEndsTickers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := worker.NewPool(1, 10)
		pool.Start()

		sched := New(pool)
		sched.Schedule("fast", 5*time.Millisecond, worker.JobFunc(func(context.Context) error { return nil }))
		sched.Schedule("slow", time.Hour, worker.JobFunc(func(context.Context) error { return nil }))

		sched.Stop()
		pool.Stop()
	})
}
