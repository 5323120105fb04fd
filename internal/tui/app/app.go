// Package app provides the main TUI application that wires all views together.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/log"
	"github.com/freeflow-dev/freeflow/internal/tui"
	"github.com/freeflow-dev/freeflow/internal/tui/commands"
	"github.com/freeflow-dev/freeflow/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	onboardingView views.OnboardingModel
	diveView       views.DiveModel
	completeView   views.CompleteModel
}

// New creates a new App. store may be nil when history is disabled.
func New(cfg *config.Config, home string, store *history.Store, journal *log.Logger, logger logrus.FieldLogger) *App {
	model := tui.NewModel(cfg, home, store, journal, logger)

	return &App{
		model:          model,
		onboardingView: views.NewOnboardingModel(cfg, model.Width, model.Height),
	}
}

// Model exposes the shared state, mainly for tests.
func (a *App) Model() *tui.Model { return a.model }

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return commands.LoadBestCmd(a.model.Store)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateOnboarding:
			a.onboardingView, cmd = a.onboardingView.Update(msg)
		case tui.StateDiving:
			a.diveView, cmd = a.diveView.Update(msg)
		case tui.StateComplete:
			a.completeView, cmd = a.completeView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				a.model.EndDive()
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, commands.CtrlCResetCmd()
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.BestLoadedMsg:
		if msg.Err != nil {
			a.model.Logger.WithError(msg.Err).Warn("loading best dive")
		}
		a.model.Best = msg.Best
		a.onboardingView.SetBest(msg.Best)
		return a, nil

	case tui.DiveRecordedMsg:
		if msg.Err != nil {
			a.model.Logger.WithError(msg.Err).Error("recording dive")
		}
		if msg.Best != nil {
			a.model.Best = msg.Best
			a.onboardingView.SetBest(msg.Best)
		}
		a.completeView.SetRecorded(msg.Best, msg.Err)
		return a, nil

	case tui.ErrorMsg:
		a.model.Err = msg.Err
		return a, nil
	}

	switch a.model.State {
	case tui.StateOnboarding:
		return a.updateOnboarding(msg)
	case tui.StateDiving:
		return a.updateDiving(msg)
	case tui.StateComplete:
		return a.updateComplete(msg)
	}
	return a, nil
}

// View renders the current application state.
func (a *App) View() string {
	a.onboardingView.SetCtrlCPending(a.model.CtrlCPending)
	a.diveView.SetCtrlCPending(a.model.CtrlCPending)

	switch a.model.State {
	case tui.StateOnboarding:
		return a.centerContent(a.onboardingView.View())
	case tui.StateDiving:
		return a.diveView.View()
	case tui.StateComplete:
		return a.completeView.View()
	default:
		return "Unknown state"
	}
}

// centerContent centers the given content horizontally.
func (a *App) centerContent(content string) string {
	return lipgloss.PlaceHorizontal(a.model.Width, lipgloss.Center, content)
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateOnboarding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if start, ok := msg.(tui.StartDiveMsg); ok {
		return a.startDive(start.Variant)
	}

	var cmd tea.Cmd
	a.onboardingView, cmd = a.onboardingView.Update(msg)
	return a, cmd
}

func (a *App) startDive(variant string) (tea.Model, tea.Cmd) {
	if err := a.model.StartDive(variant); err != nil {
		a.onboardingView.Err = err
		return a, nil
	}
	a.onboardingView.Err = nil

	s := a.model.Session
	a.diveView = views.NewDiveModel(s.Snapshot(), a.model.Width, a.model.Height)
	a.diveView = a.diveView.Apply(a.model.Flush(), s.Snapshot())

	return a, tea.Batch(
		commands.ListenLoopCmd(s.ID(), a.model.Loop),
		commands.HostTickCmd(s.ID(), a.model.Cfg.Tick()),
	)
}

func (a *App) updateDiving(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := a.model.Session

	switch msg := msg.(type) {
	case tui.LoopCallMsg:
		if !a.model.IsCurrent(msg.Dive) {
			return a, nil
		}
		msg.Fn()
		return a.afterStep(commands.ListenLoopCmd(msg.Dive, a.model.Loop))

	case tui.PollMsg:
		if !a.model.IsCurrent(msg.Dive) {
			return a, nil
		}
		return a, commands.ListenLoopCmd(msg.Dive, a.model.Loop)

	case tui.HostTickMsg:
		if !a.model.IsCurrent(msg.Dive) {
			return a, nil
		}
		s.Tick()
		return a.afterStep(commands.HostTickCmd(msg.Dive, a.model.Cfg.Tick()))

	case tui.TapNewestMsg:
		s.TapNewest()
		return a.afterStep(nil)

	case tui.TapMsg:
		s.Tap(msg.Token)
		return a.afterStep(nil)

	case tui.SurfaceMsg:
		s.Stop()
		return a.afterStep(nil)
	}

	var cmd tea.Cmd
	a.diveView, cmd = a.diveView.Update(msg)
	return a, cmd
}

// afterStep renders whatever the session queued and moves to the
// completion screen once the dive is over. next re-arms the host loop
// while the dive continues.
func (a *App) afterStep(next tea.Cmd) (tea.Model, tea.Cmd) {
	s := a.model.Session
	events := a.model.Flush()
	a.diveView = a.diveView.Apply(events, s.Snapshot())

	if a.model.Diving() {
		return a, next
	}

	a.model.EndDive()
	a.model.State = tui.StateComplete
	r := s.Result()
	a.completeView = views.NewCompleteModel(r, a.model.Width, a.model.Height)
	return a, commands.RecordDiveCmd(a.model.Store, r)
}

func (a *App) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tui.DiveAgainMsg); ok {
		a.model.State = tui.StateOnboarding
		return a, nil
	}

	var cmd tea.Cmd
	a.completeView, cmd = a.completeView.Update(msg)
	return a, cmd
}
