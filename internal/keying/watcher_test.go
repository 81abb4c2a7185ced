package keying

import (
	"testing"
	"time"

	"github.com/verte-zerg/morsekey/internal/device"
)

func within(t *testing.T, what string, got, want, tol time.Duration) {
	t.Helper()
	if got < want || got > want+tol {
		t.Fatalf("%s: got %v, want %v (tolerance %v)", what, got, want, tol)
	}
}

func TestWaitForEdgePress(t *testing.T) {
	clock := device.NewSimClock()
	origin := clock.Now()
	key := device.NewSimKey(clock, []device.KeyEdge{{At: 50 * time.Millisecond, Pressed: true}})
	w := NewEdgeWatcher(key, clock, time.Millisecond)

	ts, ok := w.WaitForEdge(Press, time.Second)
	if !ok {
		t.Fatalf("expected press edge, got timeout")
	}
	within(t, "press timestamp", ts.Sub(origin), 50*time.Millisecond, 3*time.Millisecond)
}

func TestWaitForEdgeRelease(t *testing.T) {
	clock := device.NewSimClock()
	origin := clock.Now()
	key := device.NewSimKey(clock, []device.KeyEdge{
		{At: 10 * time.Millisecond, Pressed: true},
		{At: 80 * time.Millisecond, Pressed: false},
	})
	w := NewEdgeWatcher(key, clock, time.Millisecond)

	if _, ok := w.WaitForEdge(Press, time.Second); !ok {
		t.Fatalf("expected press edge")
	}
	ts, ok := w.WaitForEdge(Release, time.Second)
	if !ok {
		t.Fatalf("expected release edge, got timeout")
	}
	within(t, "release timestamp", ts.Sub(origin), 80*time.Millisecond, 3*time.Millisecond)
}

func TestWaitForEdgeTimeout(t *testing.T) {
	clock := device.NewSimClock()
	origin := clock.Now()
	key := device.NewSimKey(clock, nil)
	w := NewEdgeWatcher(key, clock, time.Millisecond)

	_, ok := w.WaitForEdge(Press, 100*time.Millisecond)
	if ok {
		t.Fatalf("expected timeout on a silent key")
	}
	within(t, "timeout bound", clock.Now().Sub(origin), 100*time.Millisecond, 3*time.Millisecond)
}

func TestWaitForEdgeIgnoresWrongDirection(t *testing.T) {
	clock := device.NewSimClock()
	origin := clock.Now()
	key := device.NewSimKey(clock, []device.KeyEdge{
		{At: 10 * time.Millisecond, Pressed: true},
		{At: 40 * time.Millisecond, Pressed: false},
	})
	w := NewEdgeWatcher(key, clock, time.Millisecond)

	// Only a release is requested; the press at 10ms must not satisfy it.
	ts, ok := w.WaitForEdge(Release, time.Second)
	if !ok {
		t.Fatalf("expected release edge")
	}
	within(t, "release timestamp", ts.Sub(origin), 40*time.Millisecond, 3*time.Millisecond)
}
