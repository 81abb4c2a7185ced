package audio

import (
	"testing"
	"time"

	"github.com/verte-zerg/morsekey/internal/device"
)

const testUnit = 100 * time.Millisecond

func newTestPlayer() (*Player, *device.SimClock, *device.SimIndicator) {
	clock := device.NewSimClock()
	out := &device.SimIndicator{}
	return NewPlayer(out, clock, testUnit), clock, out
}

func TestPlaySequenceTiming(t *testing.T) {
	p, clock, out := newTestPlayer()
	origin := clock.Now()

	// A is dot dash: 1 + 1 + 3 + 1 units sounded/gapped, then 2 trailing
	// units complete the letter gap.
	p.PlaySequence(".-")

	if got, want := clock.Now().Sub(origin), 8*testUnit; got != want {
		t.Fatalf("expected %v total, got %v", want, got)
	}
	events := out.Events()
	if len(events) != 4 {
		t.Fatalf("expected 4 indicator events, got %d", len(events))
	}
	want := []bool{true, false, true, false}
	for i, on := range want {
		if events[i] != on {
			t.Fatalf("event %d: expected %v, got %v", i, on, events[i])
		}
	}
	if out.IsOn() {
		t.Fatalf("expected indicator off after playback")
	}
}

func TestPlayTextSkipsUncodedAndSpaces(t *testing.T) {
	p, clock, out := newTestPlayer()
	origin := clock.Now()

	// "E E": dot plus letter gap is 4 units, the space adds 4 more for the
	// full 7-unit word gap; uncoded characters add nothing.
	p.PlayText("E# E")

	if got, want := clock.Now().Sub(origin), 12*testUnit; got != want {
		t.Fatalf("expected %v total, got %v", want, got)
	}
	if len(out.Events()) != 4 {
		t.Fatalf("expected 4 indicator events, got %d", len(out.Events()))
	}
}

func TestFeedbackPatterns(t *testing.T) {
	p, clock, out := newTestPlayer()

	start := clock.Now()
	p.FeedbackOK()
	if got, want := clock.Now().Sub(start), 180*time.Millisecond; got != want {
		t.Fatalf("expected %v for the pass pattern, got %v", want, got)
	}
	if len(out.Events()) != 4 {
		t.Fatalf("expected two blips, got %d events", len(out.Events()))
	}

	start = clock.Now()
	p.FeedbackBad()
	if got, want := clock.Now().Sub(start), 250*time.Millisecond; got != want {
		t.Fatalf("expected %v for the fail buzz, got %v", want, got)
	}
	if out.IsOn() {
		t.Fatalf("expected indicator off after feedback")
	}
}

func TestWordGapIsSilence(t *testing.T) {
	p, clock, out := newTestPlayer()
	start := clock.Now()
	p.WordGap()
	if got, want := clock.Now().Sub(start), 7*testUnit; got != want {
		t.Fatalf("expected %v gap, got %v", want, got)
	}
	if len(out.Events()) != 0 {
		t.Fatalf("expected no indicator events during a word gap")
	}
}
