package score

import (
	"strings"
	"testing"
	"time"
)

func TestScoreCorrect(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	pass, report := s.Score(".-", ".-", []time.Duration{110 * time.Millisecond, 380 * time.Millisecond})
	if !pass {
		t.Fatalf("expected pass")
	}
	if !report.Pass {
		t.Fatalf("expected report to carry the pass")
	}
	out := report.Render()
	if !strings.Contains(out, "Correct!") {
		t.Fatalf("expected Correct! in report: %s", out)
	}
	if !strings.Contains(out, "Expected: .-") {
		t.Fatalf("expected the reference sequence in report: %s", out)
	}
	if !strings.Contains(out, "Presses : 0.9u 3.2u") {
		t.Fatalf("expected press timings in units: %s", out)
	}
}

func TestScorePassIgnoresDurations(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	pass, _ := s.Score("...", "...", []time.Duration{time.Hour, 0, time.Second})
	if !pass {
		t.Fatalf("expected pass regardless of press timings")
	}
}

func TestScoreNoKeying(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	pass, report := s.Score("-", "", nil)
	if pass {
		t.Fatalf("expected fail on empty decode")
	}
	if !report.NoKeying {
		t.Fatalf("expected NoKeying")
	}
	out := report.Render()
	if !strings.Contains(out, "No keying detected.") {
		t.Fatalf("expected no-keying notice: %s", out)
	}
	if !strings.Contains(out, "Expected: -") {
		t.Fatalf("expected the reference sequence even with no keying: %s", out)
	}
	if !strings.Contains(out, "Words   : DASH") {
		t.Fatalf("expected the spelled-out reference: %s", out)
	}
}

func TestScoreLengthMismatch(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	pass, report := s.Score("..", ".", []time.Duration{50 * time.Millisecond})
	if pass {
		t.Fatalf("expected fail on length mismatch")
	}
	if report.MismatchAt != 0 {
		t.Fatalf("expected no positional mismatch, got %d", report.MismatchAt)
	}
	out := report.Render()
	if !strings.Contains(out, "Length mismatch (expected 2 symbols, got 1)") {
		t.Fatalf("expected length mismatch notice: %s", out)
	}
}

func TestScoreFirstMismatchPosition(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	pass, report := s.Score("-.", "..", []time.Duration{100 * time.Millisecond, 100 * time.Millisecond})
	if pass {
		t.Fatalf("expected fail on mismatch")
	}
	if report.MismatchAt != 1 {
		t.Fatalf("expected mismatch at symbol 1, got %d", report.MismatchAt)
	}
	out := report.Render()
	if !strings.Contains(out, "Mismatch at symbol #1 (expected - got .)") {
		t.Fatalf("expected positional mismatch notice: %s", out)
	}
}

func TestScoreReportsDecodedRenderings(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	_, report := s.Score(".-", "-.", []time.Duration{400 * time.Millisecond, 90 * time.Millisecond})
	out := report.Render()
	if !strings.Contains(out, "Got     : -.") {
		t.Fatalf("expected decoded sequence: %s", out)
	}
	if !strings.Contains(out, "GotPretty: −·") {
		t.Fatalf("expected decoded glyphs: %s", out)
	}
	if !strings.Contains(out, "GotWords: DASH DOT") {
		t.Fatalf("expected decoded words: %s", out)
	}
}

func TestScoreIdempotent(t *testing.T) {
	s := NewScorer(120 * time.Millisecond)
	durations := []time.Duration{100 * time.Millisecond}
	passA, reportA := s.Score("..", ".", durations)
	passB, reportB := s.Score("..", ".", durations)
	if passA != passB {
		t.Fatalf("expected identical verdicts")
	}
	if reportA.Render() != reportB.Render() {
		t.Fatalf("expected identical reports")
	}
}
