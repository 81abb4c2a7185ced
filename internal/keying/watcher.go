package keying

import "time"

// Input reports the current state of the key. Implementations debounce at
// the driver layer, so the watcher sees a clean boolean stream.
type Input interface {
	Pressed() bool
}

// Output drives the audible or visual indicator.
type Output interface {
	On()
	Off()
}

// Edge selects a transition direction.
type Edge int

const (
	// Press is the released-to-pressed transition.
	Press Edge = iota
	// Release is the pressed-to-released transition.
	Release
)

// EdgeWatcher detects transitions by sampling a boolean input at a fixed
// period. It never mutates the input.
type EdgeWatcher struct {
	in    Input
	clock Clock
	poll  time.Duration
}

// NewEdgeWatcher returns a watcher sampling in every poll interval.
func NewEdgeWatcher(in Input, clock Clock, poll time.Duration) *EdgeWatcher {
	return &EdgeWatcher{in: in, clock: clock, poll: poll}
}

// WaitForEdge blocks until the requested transition is observed and returns
// the timestamp of the sample that saw it. The second return is false if
// timeout elapses first, measured from call entry.
func (w *EdgeWatcher) WaitForEdge(edge Edge, timeout time.Duration) (time.Time, bool) {
	start := w.clock.Now()
	prev := w.in.Pressed()
	for w.clock.Now().Sub(start) < timeout {
		cur := w.in.Pressed()
		if cur != prev && matchesEdge(edge, cur) {
			return w.clock.Now(), true
		}
		prev = cur
		w.clock.Sleep(w.poll)
	}
	return time.Time{}, false
}

func matchesEdge(edge Edge, pressed bool) bool {
	if edge == Press {
		return pressed
	}
	return !pressed
}
