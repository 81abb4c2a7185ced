// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"fmt"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/morsekey/internal/drill"
	"github.com/verte-zerg/morsekey/internal/keying"
	"github.com/verte-zerg/morsekey/internal/morse"
	"github.com/verte-zerg/morsekey/internal/stats"
	"github.com/verte-zerg/morsekey/internal/statsui"
	"github.com/verte-zerg/morsekey/internal/trainer"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	reportStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D216"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Options wires the practice model to its collaborators.
type Options struct {
	Session *trainer.Session
	Tally   *stats.Tally
	Params  keying.Params

	// Drill supplies the next character when set; otherwise the learner
	// types the character to practice.
	Drill       *drill.Generator
	DrillFactor float64

	// KeyTap forwards keystrokes to the keyboard key while a capture is in
	// flight. Nil when the key is a real input device.
	KeyTap func()

	// Practice starts with capture enabled; off means listen-only.
	Practice bool
}

// resultMsg carries one finished trainer task into the update loop.
type resultMsg trainer.Result

// feedbackMsg follows a result once its verdict tone has played and the
// busy gate is released.
type feedbackMsg struct{}

// Model implements the Bubble Tea practice UI.
type Model struct {
	opts      Options
	statsView *statsui.Model

	practice  bool
	showStats bool

	width  int
	height int

	current  rune
	status   string
	report   string
	lastPass bool
	hasScore bool
}

// NewModel constructs a practice model.
func NewModel(opts Options) *Model {
	m := &Model{
		opts:      opts,
		statsView: statsui.NewModel(),
		practice:  opts.Practice,
	}
	m.statsView.SetTally(opts.Tally)
	if opts.Drill == nil {
		m.status = "Type a character to practice."
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.opts.Drill != nil {
		m.startChar(m.nextDrillChar())
	}
	return m.waitForResult()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statsView.SetSize(msg.Width, msg.Height)
		return m, nil
	case resultMsg:
		return m.handleResult(trainer.Result(msg))
	case feedbackMsg:
		return m.handleFeedbackDone()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}

	// While a capture is in flight every keystroke works the morse key in
	// keyboard mode; autorepeat keeps the press alive for long dashes.
	if m.opts.Session.Busy() && m.opts.KeyTap != nil {
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.opts.KeyTap()
			return m, nil
		}
	}

	if msg.Type == tea.KeyTab {
		m.showStats = !m.showStats
		if m.showStats {
			m.statsView.SetTally(m.opts.Tally)
		}
		return m, nil
	}
	if m.showStats {
		_, cmd := m.statsView.Update(msg)
		return m, cmd
	}

	switch {
	case msg.Type == tea.KeyF1 || msg.Type == tea.KeyCtrlP:
		m.practice = !m.practice
		if m.practice {
			m.status = "Practice mode on."
			if m.opts.Drill == nil {
				m.status = "Practice mode on. Type a character to practice."
			}
		} else {
			m.status = "Listen-only mode. Characters play without capture."
		}
		return m, nil
	case msg.Type == tea.KeySpace:
		if m.opts.Session.Gap() {
			m.status = "Word gap."
		}
		return m, nil
	case msg.Type == tea.KeyRunes:
		if m.opts.Drill == nil && len(msg.Runes) > 0 {
			m.startChar(msg.Runes[0])
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleResult(r trainer.Result) (tea.Model, tea.Cmd) {
	if r.Kind == trainer.Attempt {
		dev := stats.TimingDeviation(r.Report.Decoded, r.Report.Durations, m.opts.Params.Unit)
		m.opts.Tally.Record(r.Char, r.Pass, dev)
		m.statsView.SetTally(m.opts.Tally)
		m.report = r.Report.Render()
		m.lastPass = r.Pass
		m.hasScore = true
		if r.Pass {
			m.status = fmt.Sprintf("%q correct.", r.Char)
		} else {
			m.status = fmt.Sprintf("%q missed.", r.Char)
		}
	}
	return m, tea.Batch(m.finishResult(r), m.waitForResult())
}

func (m *Model) handleFeedbackDone() (tea.Model, tea.Cmd) {
	if m.opts.Drill != nil && m.practice {
		m.startChar(m.nextDrillChar())
	}
	return m, nil
}

func (m *Model) nextDrillChar() rune {
	return m.opts.Drill.Next(m.opts.Tally.MissCounts(), m.opts.DrillFactor)
}

func (m *Model) startChar(ch rune) {
	ch = unicode.ToUpper(ch)
	code, ok := morse.Lookup(ch)
	if !ok {
		return
	}
	var started bool
	if m.practice {
		started = m.opts.Session.Begin(ch)
	} else {
		started = m.opts.Session.Play(ch)
	}
	if !started {
		return
	}
	m.current = ch
	if m.practice {
		m.status = fmt.Sprintf("Key %q: %s (%s)", ch, code.Pretty(), code.Words())
	} else {
		m.status = fmt.Sprintf("Playing %q: %s (%s)", ch, code.Pretty(), code.Words())
	}
}

func (m *Model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-m.opts.Session.Results())
	}
}

// finishResult plays the verdict tone off the UI loop and releases the
// busy gate once it is done.
func (m *Model) finishResult(r trainer.Result) tea.Cmd {
	return func() tea.Msg {
		m.opts.Session.Finish(r)
		return feedbackMsg{}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showStats {
		return m.statsView.View()
	}
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	lines := []string{
		titleStyle.Render("morsekey") + "  " + modeStyle.Render(m.renderMode()),
		"",
		statusStyle.Render(wrapText(m.status, contentWidth)),
	}
	if m.report != "" {
		verdict := reportStyle
		if m.hasScore {
			if m.lastPass {
				verdict = passStyle
			} else {
				verdict = failStyle
			}
		}
		lines = append(lines, "", verdict.Render(wrapText(m.report, contentWidth)))
	}
	lines = append(lines, "", footerStyle.Render(m.renderHelp()))
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(content))
}

func (m *Model) renderMode() string {
	mode := "listen"
	if m.practice {
		mode = "practice"
	}
	if m.opts.Drill != nil {
		mode += " · drill"
	}
	return mode
}

func (m *Model) renderHelp() string {
	help := "Practice: F1/ctrl+p  Word gap: space  Stats: tab  Quit: esc"
	if m.opts.KeyTap != nil {
		help = "Key with any letter while capturing  " + help
	}
	return help
}
