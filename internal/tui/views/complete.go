package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/tui"
	"github.com/freeflow-dev/freeflow/internal/ui"
)

// CompleteModel is the view model for the surfacing screen.
type CompleteModel struct {
	keys     tui.KeyMap
	result   dive.Result
	best     *history.Dive
	recorded bool
	Err      error
	width    int
	height   int
}

// NewCompleteModel shows the result of a finished dive.
func NewCompleteModel(r dive.Result, width, height int) CompleteModel {
	return CompleteModel{
		keys:   tui.DefaultKeyMap,
		result: r,
		width:  width,
		height: height,
	}
}

// SetRecorded marks the dive stored and records the current best.
func (m *CompleteModel) SetRecorded(best *history.Dive, err error) {
	m.recorded = err == nil
	m.best = best
	m.Err = err
}

// PersonalBest reports whether the finished dive is the stored best.
func (m CompleteModel) PersonalBest() bool {
	return m.recorded && m.best != nil && m.best.ID == m.result.ID
}

// Init returns the initial command for the completion view.
func (m CompleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the completion view.
func (m CompleteModel) Update(msg tea.Msg) (CompleteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Again):
			return m, func() tea.Msg { return tui.DiveAgainMsg{} }
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the completion view.
func (m CompleteModel) View() string {
	r := m.result
	var b strings.Builder

	b.WriteString(tui.DimStyle.Render("You surfaced as"))
	b.WriteString("\n")
	b.WriteString(tui.TierStyle(r.Tier.Color).Render(strings.ToUpper(r.Tier.Label)))
	b.WriteString("\n\n")
	b.WriteString(r.Tier.Message)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Depth        %.1f m\n", r.Score)
	fmt.Fprintf(&b, "Time         %s\n", ui.FormatDuration(r.Elapsed))
	fmt.Fprintf(&b, "Notifications %d, tapped %d\n", r.Spawned, r.Taps)
	if r.Reason == dive.ReasonBudget {
		b.WriteString(tui.WarningStyle.Render("Tap budget spent"))
		b.WriteString("\n")
	}

	if m.PersonalBest() {
		b.WriteString(tui.SuccessStyle.Render("New personal best"))
		b.WriteString("\n")
	} else if m.best != nil {
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("Best %.1f m (%s)", m.best.Score, m.best.Tier().Label)))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render("Could not save dive: " + m.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("r: Dive again   q: Quit"))

	boxed := tui.BoxStyle.
		BorderForeground(lipgloss.Color(r.Tier.Color)).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
}
