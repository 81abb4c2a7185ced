// Package score compares decoded attempts against reference sequences.
package score

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/morsekey/internal/morse"
)

// Scorer diffs decoded attempts against reference sequences and builds
// learner-facing reports.
type Scorer struct {
	unit time.Duration
}

// NewScorer returns a scorer expressing press durations in multiples of
// unit.
func NewScorer(unit time.Duration) *Scorer {
	return &Scorer{unit: unit}
}

// Report describes one scored attempt. MismatchAt is the 1-based position
// of the first differing symbol; it is zero on pass, on empty decode, and
// when the shared prefix matches but the lengths differ.
type Report struct {
	Expected  morse.Sequence
	Decoded   morse.Sequence
	Durations []time.Duration
	Unit      time.Duration

	Pass       bool
	NoKeying   bool
	MismatchAt int
	WantSymbol morse.Symbol
	GotSymbol  morse.Symbol
}

// Score compares decoded to expected. Scoring is pure; the same inputs
// always produce the same verdict and report.
func (s *Scorer) Score(expected, decoded morse.Sequence, durations []time.Duration) (bool, Report) {
	r := Report{
		Expected:  expected,
		Decoded:   decoded,
		Durations: durations,
		Unit:      s.unit,
	}
	if decoded.Len() == 0 {
		r.NoKeying = true
		return false, r
	}
	if decoded == expected {
		r.Pass = true
		return true, r
	}
	n := expected.Len()
	if decoded.Len() < n {
		n = decoded.Len()
	}
	for i := 0; i < n; i++ {
		if expected.At(i) != decoded.At(i) {
			r.MismatchAt = i + 1
			r.WantSymbol = expected.At(i)
			r.GotSymbol = decoded.At(i)
			break
		}
	}
	return false, r
}

// Render lays the report out for display. The expected sequence is always
// shown; the decoded sequence and press timings follow whenever anything
// was keyed.
func (r Report) Render() string {
	lines := []string{
		"Expected: " + string(r.Expected),
		"Pretty  : " + r.Expected.Pretty(),
		"Words   : " + r.Expected.Words(),
	}
	if r.NoKeying {
		lines = append(lines, "No keying detected.")
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		"Got     : "+string(r.Decoded),
		"GotPretty: "+r.Decoded.Pretty(),
		"GotWords: "+r.Decoded.Words(),
		"Presses : "+r.renderPresses(),
	)
	switch {
	case r.Pass:
		lines = append(lines, "Correct!")
	case r.MismatchAt > 0:
		lines = append(lines, fmt.Sprintf("Mismatch at symbol #%d (expected %s got %s)",
			r.MismatchAt, r.WantSymbol, r.GotSymbol))
	default:
		lines = append(lines, fmt.Sprintf("Length mismatch (expected %d symbols, got %d)",
			r.Expected.Len(), r.Decoded.Len()))
	}
	return strings.Join(lines, "\n")
}

func (r Report) renderPresses() string {
	parts := make([]string, 0, len(r.Durations))
	for _, d := range r.Durations {
		parts = append(parts, fmt.Sprintf("%.1fu", float64(d)/float64(r.Unit)))
	}
	return strings.Join(parts, " ")
}
