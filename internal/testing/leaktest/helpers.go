// Package leaktest checks that background workers (worker pools, the
// scheduler, the SSE hub, mound callbacks) wind down after Stop/Shutdown.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 5 * time.Millisecond
	checkTimeout = 500 * time.Millisecond
)

// GoroutineChecker records a goroutine baseline and later compares against it
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	settle()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check polls until the goroutine count is back within tolerance of the
// baseline, failing the test if it never gets there.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.before + tolerance
	if waitFor(limit, checkTimeout) {
		return
	}
	after := runtime.NumGoroutine()
	g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
		g.before, after, after-g.before, tolerance)
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if !waitFor(target, timeout) {
		t.Errorf("timeout waiting for goroutines: current=%d target=%d", runtime.NumGoroutine(), target)
	}
}

func waitFor(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func settle() {
	runtime.Gosched()
	time.Sleep(settleDelay)
}
