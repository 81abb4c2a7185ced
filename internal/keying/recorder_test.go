package keying

import (
	"testing"
	"time"

	"github.com/verte-zerg/morsekey/internal/device"
)

func testParams() Params {
	p := DefaultParams()
	p.StartTimeout = 500 * time.Millisecond
	p.ReleaseTimeout = 800 * time.Millisecond
	return p
}

func TestRecordAttemptNoKeying(t *testing.T) {
	clock := device.NewSimClock()
	origin := clock.Now()
	key := device.NewSimKey(clock, nil)
	r := NewRecorder(key, nil, clock, testParams(), false, nil)

	decoded, durations := r.RecordAttempt()
	if decoded != "" {
		t.Fatalf("expected empty decode, got %q", decoded)
	}
	if len(durations) != 0 {
		t.Fatalf("expected no durations, got %d", len(durations))
	}
	within(t, "start timeout bound", clock.Now().Sub(origin), 500*time.Millisecond, 5*time.Millisecond)
}

func TestRecordAttemptSingleDot(t *testing.T) {
	clock := device.NewSimClock()
	origin := clock.Now()
	key := device.NewSimKey(clock, device.TapEdges([][2]time.Duration{
		{20 * time.Millisecond, 100 * time.Millisecond},
	}))
	r := NewRecorder(key, nil, clock, testParams(), false, nil)

	decoded, durations := r.RecordAttempt()
	if decoded != "." {
		t.Fatalf("expected ., got %q", decoded)
	}
	if len(durations) != 1 {
		t.Fatalf("expected 1 duration, got %d", len(durations))
	}
	within(t, "press duration", durations[0], 100*time.Millisecond, 3*time.Millisecond)

	// Release at 120ms plus the three-unit idle gap.
	idle := testParams().EndIdle()
	within(t, "termination time", clock.Now().Sub(origin), 120*time.Millisecond+idle, 5*time.Millisecond)
}

func TestRecordAttemptClassifiesDotsAndDashes(t *testing.T) {
	clock := device.NewSimClock()
	key := device.NewSimKey(clock, device.TapEdges([][2]time.Duration{
		{20 * time.Millisecond, 100 * time.Millisecond},
		{270 * time.Millisecond, 350 * time.Millisecond},
		{700 * time.Millisecond, 90 * time.Millisecond},
	}))
	r := NewRecorder(key, nil, clock, testParams(), false, nil)

	decoded, durations := r.RecordAttempt()
	if decoded != ".-." {
		t.Fatalf("expected .-., got %q", decoded)
	}
	if len(durations) != 3 {
		t.Fatalf("expected 3 durations, got %d", len(durations))
	}
}

func TestRecordAttemptDropsShortPresses(t *testing.T) {
	clock := device.NewSimClock()
	key := device.NewSimKey(clock, device.TapEdges([][2]time.Duration{
		{20 * time.Millisecond, 10 * time.Millisecond},
		{120 * time.Millisecond, 100 * time.Millisecond},
		{300 * time.Millisecond, 5 * time.Millisecond},
	}))
	r := NewRecorder(key, nil, clock, testParams(), false, nil)

	decoded, durations := r.RecordAttempt()
	if decoded != "." {
		t.Fatalf("expected noise to be dropped, got %q", decoded)
	}
	if len(durations) != 1 {
		t.Fatalf("expected 1 duration, got %d", len(durations))
	}
	within(t, "kept duration", durations[0], 100*time.Millisecond, 3*time.Millisecond)
}

func TestRecordAttemptStuckKey(t *testing.T) {
	clock := device.NewSimClock()
	edges := device.TapEdges([][2]time.Duration{
		{20 * time.Millisecond, 100 * time.Millisecond},
	})
	// A press that never releases.
	edges = append(edges, device.KeyEdge{At: 200 * time.Millisecond, Pressed: true})
	key := device.NewSimKey(clock, edges)
	out := &device.SimIndicator{}
	r := NewRecorder(key, out, clock, testParams(), true, nil)

	decoded, durations := r.RecordAttempt()
	if decoded != "." {
		t.Fatalf("expected the completed press only, got %q", decoded)
	}
	if len(durations) != 1 {
		t.Fatalf("expected 1 duration, got %d", len(durations))
	}
	if out.IsOn() {
		t.Fatalf("expected indicator off after a stuck key")
	}
}

func TestRecordAttemptSidetoneFollowsKey(t *testing.T) {
	clock := device.NewSimClock()
	key := device.NewSimKey(clock, device.TapEdges([][2]time.Duration{
		{20 * time.Millisecond, 100 * time.Millisecond},
	}))
	out := &device.SimIndicator{}
	r := NewRecorder(key, out, clock, testParams(), true, nil)

	r.RecordAttempt()
	events := out.Events()
	if len(events) == 0 {
		t.Fatalf("expected indicator events")
	}
	sawOn := false
	for _, on := range events {
		if on {
			sawOn = true
		}
	}
	if !sawOn {
		t.Fatalf("expected the sidetone to sound during the press")
	}
	if events[len(events)-1] {
		t.Fatalf("expected the indicator off on exit")
	}
	if out.IsOn() {
		t.Fatalf("expected indicator off after capture")
	}
}

func TestRecordAttemptSidetoneDisabled(t *testing.T) {
	clock := device.NewSimClock()
	key := device.NewSimKey(clock, device.TapEdges([][2]time.Duration{
		{20 * time.Millisecond, 100 * time.Millisecond},
	}))
	out := &device.SimIndicator{}
	r := NewRecorder(key, out, clock, testParams(), false, nil)

	r.RecordAttempt()
	for _, on := range out.Events() {
		if on {
			t.Fatalf("expected the indicator to stay silent with sidetone off")
		}
	}
	if out.IsOn() {
		t.Fatalf("expected indicator off after capture")
	}
}
