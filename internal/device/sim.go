package device

import "time"

// SimClock is a virtual monotonic clock. Sleep advances it immediately, so
// busy-poll loops run through simulated time without real delay. Not safe
// for concurrent use; a capture loop owns its clock.
type SimClock struct {
	now time.Time
}

// NewSimClock returns a clock starting at an arbitrary origin.
func NewSimClock() *SimClock {
	return &SimClock{now: time.Unix(0, 0)}
}

func (c *SimClock) Now() time.Time {
	return c.now
}

func (c *SimClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
}

// KeyEdge is one scripted key transition, offset from the script origin.
type KeyEdge struct {
	At      time.Duration
	Pressed bool
}

// SimKey replays a scripted press timeline against a SimClock. The key
// starts released; each edge takes effect at its offset.
type SimKey struct {
	clock *SimClock
	start time.Time
	edges []KeyEdge
}

// NewSimKey returns a key whose state follows edges on the clock's
// timeline, starting now. Edges must be ordered by offset.
func NewSimKey(clock *SimClock, edges []KeyEdge) *SimKey {
	return &SimKey{clock: clock, start: clock.Now(), edges: edges}
}

// Pressed reports the scripted state at the current clock time.
func (k *SimKey) Pressed() bool {
	elapsed := k.clock.Now().Sub(k.start)
	pressed := false
	for _, e := range k.edges {
		if e.At > elapsed {
			break
		}
		pressed = e.Pressed
	}
	return pressed
}

// TapEdges builds a press/release edge pair per (offset, hold) entry.
func TapEdges(taps [][2]time.Duration) []KeyEdge {
	edges := make([]KeyEdge, 0, 2*len(taps))
	for _, tap := range taps {
		edges = append(edges,
			KeyEdge{At: tap[0], Pressed: true},
			KeyEdge{At: tap[0] + tap[1], Pressed: false},
		)
	}
	return edges
}

// SimIndicator records indicator transitions for assertions.
type SimIndicator struct {
	on     bool
	events []bool
}

func (s *SimIndicator) On() {
	s.on = true
	s.events = append(s.events, true)
}

func (s *SimIndicator) Off() {
	s.on = false
	s.events = append(s.events, false)
}

// IsOn reports the current indicator state.
func (s *SimIndicator) IsOn() bool {
	return s.on
}

// Events returns every On/Off call in order.
func (s *SimIndicator) Events() []bool {
	return s.events
}

// NopIndicator discards all indicator calls.
type NopIndicator struct{}

func (NopIndicator) On()  {}
func (NopIndicator) Off() {}
