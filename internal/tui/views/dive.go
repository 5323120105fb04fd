package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/spawn"
	"github.com/freeflow-dev/freeflow/internal/tui"
	"github.com/freeflow-dev/freeflow/internal/ui"
)

// maxCards caps how many notifications the stack draws.
const maxCards = 9

type card struct {
	token string
	at    time.Duration
	notice
}

// DiveModel is the view model for the lock screen.
type DiveModel struct {
	keys  tui.KeyMap
	help  help.Model
	gauge progress.Model

	snap    dive.Snapshot
	cards   []card // oldest first
	spawned int

	width        int
	height       int
	ctrlCPending bool
}

// NewDiveModel creates the lock screen for a freshly started dive.
func NewDiveModel(snap dive.Snapshot, width, height int) DiveModel {
	gauge := progress.New(progress.WithGradient("#67E8F9", "#7C3AED"))
	gauge.Width = gaugeWidth(width)

	return DiveModel{
		keys:   tui.DefaultKeyMap,
		help:   help.New(),
		gauge:  gauge,
		snap:   snap,
		width:  width,
		height: height,
	}
}

func gaugeWidth(width int) int {
	if w := width - 20; w < 60 {
		if w < 10 {
			return 10
		}
		return w
	}
	return 60
}

// SetCtrlCPending toggles the exit confirmation hint.
func (m *DiveModel) SetCtrlCPending(p bool) { m.ctrlCPending = p }

// Apply folds scheduler events into the card stack and stores the latest
// snapshot.
func (m DiveModel) Apply(events []spawn.Event, snap dive.Snapshot) DiveModel {
	for _, e := range events {
		switch e.Kind {
		case spawn.EventSpawn:
			m.spawned++
			m.cards = append(m.cards, card{token: e.Token, at: e.Elapsed, notice: noticeFor(m.spawned)})
		case spawn.EventDismiss:
			m.cards = removeCard(m.cards, e.Token)
		case spawn.EventComplete:
			m.cards = nil
		}
	}
	m.snap = snap
	return m
}

func removeCard(cards []card, token string) []card {
	for i, c := range cards {
		if c.token == token {
			return append(cards[:i:i], cards[i+1:]...)
		}
	}
	return cards
}

// Cards returns the live tokens newest first, as numbered on screen.
func (m DiveModel) Cards() []string {
	out := make([]string, 0, len(m.cards))
	for i := len(m.cards) - 1; i >= 0; i-- {
		out = append(out, m.cards[i].token)
	}
	return out
}

// Init returns the initial command for the dive view.
func (m DiveModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses on the lock screen. Taps are reported to the
// app as messages; the view never touches the session.
func (m DiveModel) Update(msg tea.Msg) (DiveModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Tap):
			return m, func() tea.Msg { return tui.TapNewestMsg{} }

		case key.Matches(msg, m.keys.TapIndex):
			idx := int(msg.String()[0] - '1')
			cards := m.Cards()
			if idx < 0 || idx >= len(cards) {
				return m, nil
			}
			token := cards[idx]
			return m, func() tea.Msg { return tui.TapMsg{Token: token} }

		case key.Matches(msg, m.keys.Surface):
			return m, func() tea.Msg { return tui.SurfaceMsg{} }

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gauge.Width = gaugeWidth(msg.Width)
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the lock screen.
func (m DiveModel) View() string {
	var b strings.Builder

	clock := ui.FormatClock(m.snap.Elapsed)
	if m.snap.Duration > 0 {
		clock += tui.DimStyle.Render(" / " + ui.FormatClock(m.snap.Duration))
	}
	b.WriteString(tui.ClockStyle.Render(clock))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(m.snap.Variant))
	b.WriteString("\n\n")

	b.WriteString(m.renderGauges())

	b.WriteString(m.renderCards())

	b.WriteString("\n")
	footer := m.help.View(tui.DiveKeys{KeyMap: m.keys})
	if m.ctrlCPending {
		footer = tui.WarningStyle.Render("Press Ctrl+C again to exit")
	}
	b.WriteString(footer)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
}

func (m DiveModel) renderGauges() string {
	var b strings.Builder
	if m.snap.HasDepth {
		fmt.Fprintf(&b, "Depth %5.1f m  ", m.snap.Depth)
		frac := 0.0
		if m.snap.DepthLimit > 0 {
			frac = m.snap.Depth / m.snap.DepthLimit
		}
		b.WriteString(m.gauge.ViewAs(frac))
		b.WriteString("\n")
	} else if m.snap.Duration > 0 {
		b.WriteString("Time   ")
		b.WriteString(m.gauge.ViewAs(float64(m.snap.Elapsed) / float64(m.snap.Duration)))
		b.WriteString("\n")
	}
	if m.snap.HasBudget {
		dots := strings.Repeat("●", m.snap.BudgetRemaining) +
			strings.Repeat("○", m.snap.BudgetQuota-m.snap.BudgetRemaining)
		style := tui.SuccessStyle
		if m.snap.BudgetRemaining <= 1 {
			style = tui.WarningStyle
		}
		b.WriteString("Taps left ")
		b.WriteString(style.Render(dots))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (m DiveModel) renderCards() string {
	if len(m.cards) == 0 {
		return tui.DimStyle.Render("Nothing here. Stay with it.") + "\n"
	}

	cardWidth := m.width - 20
	if cardWidth > 56 {
		cardWidth = 56
	}
	if cardWidth < 24 {
		cardWidth = 24
	}

	var b strings.Builder
	shown := 0
	for i := len(m.cards) - 1; i >= 0 && shown < maxCards; i-- {
		c := m.cards[i]
		shown++
		title := tui.CardTitleStyle.Render(fmt.Sprintf("%d  %s", shown, c.app))
		ago := tui.DimStyle.Background(lipgloss.Color("#1F2937")).
			Render("  " + ui.FormatClock(m.snap.Elapsed-c.at) + " ago")
		b.WriteString(tui.CardStyle.Width(cardWidth).Render(title + ago + "\n" + c.body))
		b.WriteString("\n")
	}
	if hidden := len(m.cards) - shown; hidden > 0 {
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("+%d more", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}
