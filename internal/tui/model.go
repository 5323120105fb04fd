package tui

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/freeflow-dev/freeflow/internal/clock"
	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/log"
	"github.com/freeflow-dev/freeflow/internal/spawn"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateOnboarding ViewState = iota
	StateDiving
	StateComplete
)

// loopBuffer is the clock loop queue size; bursts queue at most a handful
// of callbacks between two Update calls.
const loopBuffer = 256

// Model is the main TUI model that holds all application state.
type Model struct {
	State ViewState
	Err   error

	// Configuration
	Cfg  *config.Config
	Home string

	// Persistence; Store is nil when history is disabled.
	Store   *history.Store
	Journal *log.Logger
	Logger  logrus.FieldLogger

	// The running or last finished dive.
	Loop    *clock.Loop
	Session *dive.Session
	Best    *history.Dive

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool
}

// NewModel creates a new Model with the given configuration.
func NewModel(cfg *config.Config, home string, store *history.Store, journal *log.Logger, logger logrus.FieldLogger) *Model {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Model{
		State:   StateOnboarding,
		Cfg:     cfg,
		Home:    home,
		Store:   store,
		Journal: journal,
		Logger:  logger,
		Width:   80,
		Height:  24,
	}
}

// StartDive builds and starts a session for the named variant on a fresh
// clock loop. Any previous loop is closed.
func (m *Model) StartDive(variant string) error {
	preset, err := m.Cfg.Preset(variant)
	if err != nil {
		return err
	}

	m.EndDive()

	cfg := dive.ConfigFor(variant, preset)
	cfg.Logger = m.Logger
	m.Loop = clock.NewLoop(loopBuffer)
	m.Session = dive.New(cfg, m.Loop)
	if err := m.Session.Start(); err != nil {
		m.Loop.Close()
		return fmt.Errorf("start dive: %w", err)
	}

	m.journal(log.DiveStarted(m.Session))
	m.State = StateDiving
	return nil
}

// Flush drains the session's queued events into the journal and returns
// them. When the last event completes the dive, the completion is
// journalled with the final result.
func (m *Model) Flush() []spawn.Event {
	if m.Session == nil {
		return nil
	}
	events := m.Session.Drain()
	m.journal(log.DiveEvents(m.Session, events)...)
	return events
}

// Diving reports whether the current session is still running.
func (m *Model) Diving() bool {
	return m.Session != nil && m.Session.Status() == dive.StatusActive
}

// IsCurrent reports whether id names the current dive.
func (m *Model) IsCurrent(id string) bool {
	return m.Session != nil && m.Session.ID() == id
}

// EndDive stops the current session and closes its loop. Safe to call
// repeatedly.
func (m *Model) EndDive() {
	if m.Session != nil {
		m.Session.Stop()
	}
	if m.Loop != nil {
		m.Loop.Close()
	}
}

func (m *Model) journal(entries ...log.LogEvent) {
	if m.Journal == nil || len(entries) == 0 {
		return
	}
	if err := m.Journal.AppendAll(entries); err != nil {
		m.Logger.WithError(err).Warn("journal append failed")
	}
}
