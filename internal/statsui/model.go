// Package statsui provides the Bubble Tea session stats view.
package statsui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/morsekey/internal/stats"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea per-character stats table. The practice
// view toggles it in and out and forwards messages while it is visible.
type Model struct {
	charTable table.Model

	attempts int
	passes   int

	width  int
	height int
}

// NewModel constructs an empty stats table.
func NewModel() *Model {
	m := &Model{}
	m.charTable = table.New(
		table.WithColumns(charColumns()),
		table.WithHeight(1),
		table.WithFocused(true),
	)
	m.charTable.SetStyles(charTableStyles())
	return m
}

// SetTally replaces the table contents from the session tally, weakest
// characters first.
func (m *Model) SetTally(t *stats.Tally) {
	m.attempts = t.Attempts()
	m.passes = t.Passes()
	tallies := t.Chars()
	rows := make([]table.Row, 0, len(tallies))
	for _, ct := range tallies {
		rows = append(rows, table.Row{
			string(ct.Char),
			fmt.Sprintf("%d", ct.Attempts),
			fmt.Sprintf("%d", ct.Passes),
			fmt.Sprintf("%.1f%%", ct.Accuracy()*100),
		})
	}
	m.charTable.SetRows(rows)
}

// SetSize resizes the table to the given area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.charTable.SetWidth(width)
	tableHeight := height - 4
	if tableHeight < 2 {
		tableHeight = 2
	}
	m.charTable.SetHeight(tableHeight)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Scrolling keys go to the table; everything
// else is the owner's concern.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.charTable, cmd = m.charTable.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	title := titleStyle.Render("Session Stats")
	summary := summaryStyle.Render(m.renderSummary())
	body := tableMutedStyle.Render(m.charTable.View())
	help := helpStyle.Render("Scroll: up/down  Back: tab")
	return lipgloss.JoinVertical(lipgloss.Left, title, summary, body, help)
}

func (m *Model) renderSummary() string {
	if m.attempts == 0 {
		return "No attempts yet."
	}
	acc := float64(m.passes) / float64(m.attempts) * 100
	return fmt.Sprintf("Attempts %d  Correct %d  Accuracy %.1f%%", m.attempts, m.passes, acc)
}

func charColumns() []table.Column {
	return []table.Column{
		{Title: "Char", Width: 4},
		{Title: "Attempts", Width: 8},
		{Title: "Correct", Width: 7},
		{Title: "Accuracy", Width: 9},
	}
}

func charTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
