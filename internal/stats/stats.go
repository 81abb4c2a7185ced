// Package stats tallies practice attempts and renders session summaries.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/verte-zerg/morsekey/internal/morse"
)

// CharTally counts attempts for one practiced character.
type CharTally struct {
	Char     rune
	Attempts int
	Passes   int
}

// Accuracy returns the pass fraction, 1.0 for an unpracticed character.
func (c CharTally) Accuracy() float64 {
	if c.Attempts == 0 {
		return 1.0
	}
	return float64(c.Passes) / float64(c.Attempts)
}

// Tally accumulates attempt outcomes for one session. It lives on the UI
// loop; results reach it in hand-off order, so no locking is needed.
type Tally struct {
	chars      map[rune]*CharTally
	outcomes   []bool
	deviations []float64
}

// NewTally returns an empty session tally.
func NewTally() *Tally {
	return &Tally{chars: map[rune]*CharTally{}}
}

// Record adds one attempt outcome. deviation is the mean timing error of
// the attempt in units, 0 when nothing was keyed.
func (t *Tally) Record(ch rune, pass bool, deviation float64) {
	ct, ok := t.chars[ch]
	if !ok {
		ct = &CharTally{Char: ch}
		t.chars[ch] = ct
	}
	ct.Attempts++
	if pass {
		ct.Passes++
	}
	t.outcomes = append(t.outcomes, pass)
	t.deviations = append(t.deviations, deviation)
}

// Attempts returns the number of recorded attempts.
func (t *Tally) Attempts() int {
	return len(t.outcomes)
}

// Passes returns the number of passed attempts.
func (t *Tally) Passes() int {
	n := 0
	for _, ok := range t.outcomes {
		if ok {
			n++
		}
	}
	return n
}

// Accuracy returns the session pass fraction.
func (t *Tally) Accuracy() float64 {
	if len(t.outcomes) == 0 {
		return 0
	}
	return float64(t.Passes()) / float64(len(t.outcomes))
}

// Chars returns per-character tallies sorted by lowest accuracy first.
func (t *Tally) Chars() []CharTally {
	out := make([]CharTally, 0, len(t.chars))
	for _, ct := range t.chars {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Accuracy(), out[j].Accuracy()
		if ai == aj {
			return out[i].Char < out[j].Char
		}
		return ai < aj
	})
	return out
}

// MissCounts returns how often each character failed, for drill weighting.
func (t *Tally) MissCounts() map[rune]int {
	misses := make(map[rune]int, len(t.chars))
	for ch, ct := range t.chars {
		if n := ct.Attempts - ct.Passes; n > 0 {
			misses[ch] = n
		}
	}
	return misses
}

// TimingDeviation measures how far the presses of an attempt were from
// their nominal lengths, averaged over the attempt, in units. A decoded
// dot held for 1.4 units deviates by 0.4.
func TimingDeviation(decoded morse.Sequence, durations []time.Duration, unit time.Duration) float64 {
	n := decoded.Len()
	if n > len(durations) {
		n = len(durations)
	}
	if n == 0 || unit <= 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		got := float64(durations[i]) / float64(unit)
		sum += math.Abs(got - float64(decoded.At(i).Units()))
	}
	return sum / float64(n)
}

// MovingAverage computes a rolling mean over the given window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RenderSummary prints the end-of-session report: totals, the
// per-character table, and the learning curve once there is enough data.
func RenderSummary(w io.Writer, t *Tally, curveWindow int) error {
	if t.Attempts() == 0 {
		_, err := fmt.Fprintln(w, "No attempts this session.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Session Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", t.Attempts()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct: %d\n", t.Passes()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.1f%%\n", t.Accuracy()*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if err := RenderCharTable(w, t.Chars()); err != nil {
		return err
	}
	if t.Attempts() < 2 {
		return nil
	}
	accs := make([]float64, len(t.outcomes))
	for i, ok := range t.outcomes {
		if ok {
			accs[i] = 100
		}
	}
	return PlotSeries(w, "Learning Curve", []Series{
		{Name: "Accuracy", Values: MovingAverage(accs, curveWindow)},
		{Name: "Timing error (u)", Values: MovingAverage(t.deviations, curveWindow)},
	}, 0, 0)
}

// RenderCharTable prints per-character tallies, weakest first.
func RenderCharTable(w io.Writer, tallies []CharTally) error {
	if len(tallies) == 0 {
		_, err := fmt.Fprintln(w, "No characters practiced.")
		return err
	}
	headers := []string{"Char", "Attempts", "Correct", "Accuracy"}
	rows := make([][]string, 0, len(tallies))
	for _, ct := range tallies {
		rows = append(rows, []string{
			string(ct.Char),
			fmt.Sprintf("%d", ct.Attempts),
			fmt.Sprintf("%d", ct.Passes),
			fmt.Sprintf("%.1f%%", ct.Accuracy()*100),
		})
	}
	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, []bool{false, true, true, true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
