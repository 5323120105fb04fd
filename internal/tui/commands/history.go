package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/tui"
)

// RecordDiveCmd stores a finished dive and reloads the best dive.
// With a nil store it reports nothing recorded.
func RecordDiveCmd(store *history.Store, r dive.Result) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return tui.DiveRecordedMsg{}
		}

		rec, err := store.RecordDive(r)
		if err != nil {
			return tui.DiveRecordedMsg{Err: err}
		}

		best, err := store.Best()
		if err != nil && !errors.Is(err, history.ErrNotFound) {
			return tui.DiveRecordedMsg{Dive: rec, Err: err}
		}
		return tui.DiveRecordedMsg{Dive: rec, Best: best}
	}
}

// LoadBestCmd fetches the best stored dive for the onboarding screen.
func LoadBestCmd(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return tui.BestLoadedMsg{}
		}

		best, err := store.Best()
		if errors.Is(err, history.ErrNotFound) {
			return tui.BestLoadedMsg{}
		}
		return tui.BestLoadedMsg{Best: best, Err: err}
	}
}
