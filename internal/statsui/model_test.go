package statsui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/morsekey/internal/stats"
)

func TestSetTallyBuildsRows(t *testing.T) {
	tally := stats.NewTally()
	tally.Record('E', true, 0.1)
	tally.Record('E', false, 0.4)
	tally.Record('T', true, 0.2)

	m := NewModel()
	m.SetTally(tally)
	m.SetSize(60, 20)

	view := m.View()
	if !strings.Contains(view, "Attempts 3") {
		t.Errorf("expected attempt count in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Accuracy 66.7%") {
		t.Errorf("expected accuracy in view, got:\n%s", view)
	}
	rows := m.charTable.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// E has the lower accuracy and sorts first.
	if rows[0][0] != "E" || rows[1][0] != "T" {
		t.Errorf("expected weakest-first order E,T; got %q,%q", rows[0][0], rows[1][0])
	}
	if rows[0][3] != "50.0%" {
		t.Errorf("expected 50.0%% accuracy for E, got %q", rows[0][3])
	}
}

func TestEmptyTallySummary(t *testing.T) {
	m := NewModel()
	m.SetTally(stats.NewTally())
	if got := m.renderSummary(); got != "No attempts yet." {
		t.Errorf("unexpected summary: %q", got)
	}
}
