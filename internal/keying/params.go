package keying

import (
	"time"

	"github.com/verte-zerg/morsekey/internal/morse"
)

// Params holds the timing constants for capture and classification. All
// derived durations are expressed in multiples of Unit.
type Params struct {
	Unit           time.Duration
	MinPress       time.Duration
	StartTimeout   time.Duration
	ReleaseTimeout time.Duration
	EndIdleUnits   float64
	CutoffUnits    float64
	PollInterval   time.Duration
}

// DefaultParams returns the stock timing set.
func DefaultParams() Params {
	return Params{
		Unit:           120 * time.Millisecond,
		MinPress:       30 * time.Millisecond,
		StartTimeout:   8 * time.Second,
		ReleaseTimeout: 10 * time.Second,
		EndIdleUnits:   3.0,
		// Above the textbook 2x so imprecise dots still read as dots.
		CutoffUnits:  2.5,
		PollInterval: time.Millisecond,
	}
}

// Cutoff returns the press duration separating dots from dashes.
func (p Params) Cutoff() time.Duration {
	return time.Duration(p.CutoffUnits * float64(p.Unit))
}

// EndIdle returns the idle gap after a release that ends an attempt.
func (p Params) EndIdle() time.Duration {
	return time.Duration(p.EndIdleUnits * float64(p.Unit))
}

// UnitsOf expresses d as a multiple of the base unit.
func (p Params) UnitsOf(d time.Duration) float64 {
	return float64(d) / float64(p.Unit)
}

// Classify maps a press duration to a symbol. Durations at or above the
// cutoff are dashes.
func (p Params) Classify(d time.Duration) morse.Symbol {
	if d < p.Cutoff() {
		return morse.Dot
	}
	return morse.Dash
}
