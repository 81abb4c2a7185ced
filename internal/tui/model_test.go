package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/morsekey/internal/audio"
	"github.com/verte-zerg/morsekey/internal/device"
	"github.com/verte-zerg/morsekey/internal/keying"
	"github.com/verte-zerg/morsekey/internal/morse"
	"github.com/verte-zerg/morsekey/internal/score"
	"github.com/verte-zerg/morsekey/internal/stats"
	"github.com/verte-zerg/morsekey/internal/trainer"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	clock := device.NewSimClock()
	key := device.NewSimKey(clock, nil)
	out := &device.NopIndicator{}
	params := keying.DefaultParams()
	recorder := keying.NewRecorder(key, out, clock, params, false, nil)
	player := audio.NewPlayer(out, clock, params.Unit)
	scorer := score.NewScorer(params.Unit)
	session := trainer.NewSession(recorder, player, scorer, nil)
	return NewModel(Options{
		Session:  session,
		Tally:    stats.NewTally(),
		Params:   params,
		Practice: true,
	})
}

func scoredResult(ch rune, pass bool) resultMsg {
	scorer := score.NewScorer(100 * time.Millisecond)
	decoded := morse.Sequence(".-")
	if !pass {
		decoded = ".."
	}
	gotPass, report := scorer.Score(".-", decoded, []time.Duration{100 * time.Millisecond, 300 * time.Millisecond})
	return resultMsg(trainer.Result{Kind: trainer.Attempt, Char: ch, Pass: gotPass, Report: report})
}

func TestAttemptResultUpdatesTallyAndReport(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(scoredResult('A', true))
	if cmd == nil {
		t.Fatalf("expected feedback and wait commands after a result")
	}
	if m.opts.Tally.Attempts() != 1 || m.opts.Tally.Passes() != 1 {
		t.Fatalf("expected tally 1/1, got %d/%d", m.opts.Tally.Passes(), m.opts.Tally.Attempts())
	}
	if !strings.Contains(m.report, "Correct!") {
		t.Errorf("expected verdict in report, got:\n%s", m.report)
	}
	if !m.lastPass {
		t.Errorf("expected pass recorded")
	}
}

func TestFailedResultRecordsMiss(t *testing.T) {
	m := newTestModel(t)

	m.Update(scoredResult('A', false))
	if m.opts.Tally.Passes() != 0 || m.opts.Tally.Attempts() != 1 {
		t.Fatalf("expected tally 0/1, got %d/%d", m.opts.Tally.Passes(), m.opts.Tally.Attempts())
	}
	misses := m.opts.Tally.MissCounts()
	if misses['A'] != 1 {
		t.Errorf("expected one miss for A, got %d", misses['A'])
	}
	if !strings.Contains(m.report, "Mismatch at symbol #2") {
		t.Errorf("expected mismatch position in report, got:\n%s", m.report)
	}
}

func TestPracticeToggle(t *testing.T) {
	m := newTestModel(t)
	if !m.practice {
		t.Fatalf("expected practice on at start")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.practice {
		t.Errorf("expected ctrl+p to switch to listen-only")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	if !m.practice {
		t.Errorf("expected F1 to switch practice back on")
	}
}

func TestTabTogglesStatsView(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.showStats {
		t.Fatalf("expected stats view after tab")
	}
	if !strings.Contains(m.View(), "Session Stats") {
		t.Errorf("expected stats view rendered")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.showStats {
		t.Errorf("expected practice view after second tab")
	}
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %T", msg)
	}
}

func TestUnknownCharacterIgnored(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})
	if m.opts.Session.Busy() {
		t.Errorf("expected no dispatch for an uncoded character")
	}
}
