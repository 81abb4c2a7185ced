package keying

import "time"

// Clock abstracts the monotonic timeline so captures can run against a
// simulated clock in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real monotonic clock.
func SystemClock() Clock {
	return systemClock{}
}
