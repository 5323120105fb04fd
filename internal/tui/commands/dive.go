// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/freeflow-dev/freeflow/internal/clock"
	"github.com/freeflow-dev/freeflow/internal/tui"
)

// pollInterval bounds how long one listener blocks before re-arming.
const pollInterval = 100 * time.Millisecond

// ListenLoopCmd waits for the next callback queued on the dive's clock loop.
// Returns LoopCallMsg for each callback or PollMsg on timeout to keep
// polling. The callback itself is run by Update, never here.
func ListenLoopCmd(diveID string, loop *clock.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-loop.Calls():
			return tui.LoopCallMsg{Dive: diveID, Fn: fn}
		case <-time.After(pollInterval):
			return tui.PollMsg{Dive: diveID}
		}
	}
}

// HostTickCmd schedules the next session Tick.
func HostTickCmd(diveID string, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return tui.HostTickMsg{Dive: diveID}
	})
}

// CtrlCResetCmd clears the Ctrl+C confirmation after a second.
func CtrlCResetCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tui.CtrlCResetMsg{}
	})
}
