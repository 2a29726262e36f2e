// Package leaktest checks that loops started by a test have exited.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettle is how long Check waits for goroutines to wind down.
const DefaultSettle = 2 * time.Second

// GoroutineChecker records the goroutine count at construction and compares
// it later.
type GoroutineChecker struct {
	before int
	t      testing.TB
	settle time.Duration
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
		settle: DefaultSettle,
	}
}

// Check fails the test when, after polling for up to the settle window, the
// goroutine count still exceeds the recorded count by more than tolerance.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.before + tolerance
	after, ok := waitFor(limit, g.settle)
	if !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, after, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it left goroutines behind.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func waitFor(limit int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= limit {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
