// Package views provides TUI view components for the FreeFlow application.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/tui"
	"github.com/freeflow-dev/freeflow/internal/ui"
)

// variantItem is one row of the variant picker.
type variantItem struct {
	name string
	desc string
}

func (i variantItem) Title() string       { return i.name }
func (i variantItem) Description() string { return i.desc }
func (i variantItem) FilterValue() string { return i.name }

// OnboardingModel is the view model for the variant picker.
type OnboardingModel struct {
	list         list.Model
	keys         tui.KeyMap
	best         *history.Dive
	Err          error
	width        int
	height       int
	ctrlCPending bool
}

// NewOnboardingModel lists the configured variants with the selected one
// highlighted.
func NewOnboardingModel(cfg *config.Config, width, height int) OnboardingModel {
	names := cfg.VariantNames()
	items := make([]list.Item, len(names))
	selected := 0
	for i, name := range names {
		items[i] = variantItem{name: name, desc: cfg.Variants[name].Description}
		if name == cfg.Variant {
			selected = i
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), width-8, listHeight(height))
	l.Title = "Choose your dive"
	l.Styles.Title = tui.TitleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Select(selected)

	return OnboardingModel{
		list:   l,
		keys:   tui.DefaultKeyMap,
		width:  width,
		height: height,
	}
}

func listHeight(height int) int {
	if h := height - 12; h > 6 {
		return h
	}
	return 6
}

// SetBest shows the best dive so far under the picker.
func (m *OnboardingModel) SetBest(best *history.Dive) { m.best = best }

// SetCtrlCPending toggles the exit confirmation hint.
func (m *OnboardingModel) SetCtrlCPending(p bool) { m.ctrlCPending = p }

// Selected returns the highlighted variant name.
func (m OnboardingModel) Selected() string {
	if it, ok := m.list.SelectedItem().(variantItem); ok {
		return it.name
	}
	return ""
}

// Init returns the initial command for the onboarding view.
func (m OnboardingModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the onboarding view.
func (m OnboardingModel) Update(msg tea.Msg) (OnboardingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Enter) {
			name := m.Selected()
			if name == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return tui.StartDiveMsg{Variant: name}
			}
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-8, listHeight(msg.Height))
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the onboarding view.
func (m OnboardingModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("FreeFlow"))
	b.WriteString(tui.DimStyle.Render("  a dopamine-detox dive"))
	b.WriteString("\n\n")
	b.WriteString("Notifications will keep arriving. Let them pass.\n")
	b.WriteString(tui.DimStyle.Render("Every tap pulls you back toward the surface."))
	b.WriteString("\n\n")

	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.best != nil {
		t := m.best.Tier()
		line := fmt.Sprintf("Best: %s, %.1f m in %s (%s)",
			t.Label, m.best.Score, ui.FormatDuration(m.best.Elapsed()), m.best.Variant)
		b.WriteString(tui.TierStyle(t.Color).Render(line))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	footer := "Enter: Dive   ↑/↓: Choose   q: Quit"
	if m.ctrlCPending {
		footer = "Press Ctrl+C again to exit"
	}
	b.WriteString(tui.DimStyle.Render(footer))

	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())

	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}
	return boxed
}
