package views

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/spawn"
	"github.com/freeflow-dev/freeflow/internal/tier"
	"github.com/freeflow-dev/freeflow/internal/tui"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOnboardingStartsSelectedVariant(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Variant = "spam"
	m := NewOnboardingModel(cfg, 100, 40)
	assert.Equal(t, "spam", m.Selected())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tui.StartDiveMsg{Variant: "spam"}, cmd())
}

func TestOnboardingViewShowsBest(t *testing.T) {
	m := NewOnboardingModel(config.DefaultConfig(), 100, 40)
	m.SetBest(&history.Dive{Variant: "week1", Score: 31, TierName: "abyss", ElapsedMs: (40 * time.Minute).Milliseconds()})
	view := m.View()
	assert.Contains(t, view, "Abyss Diver")
	assert.Contains(t, view, "week1")
}

func lockscreen(events []spawn.Event) DiveModel {
	m := NewDiveModel(dive.Snapshot{Variant: "lockscreen"}, 100, 40)
	return m.Apply(events, dive.Snapshot{Variant: "lockscreen", Elapsed: 10 * time.Second, Status: dive.StatusActive})
}

func TestDiveApplyTracksCards(t *testing.T) {
	m := lockscreen([]spawn.Event{
		{Kind: spawn.EventSpawn, Token: "a", Elapsed: 3 * time.Second},
		{Kind: spawn.EventSpawn, Token: "b", Elapsed: 6 * time.Second},
		{Kind: spawn.EventSpawn, Token: "c", Elapsed: 9 * time.Second},
		{Kind: spawn.EventDismiss, Token: "a", Reason: spawn.ReasonExpired},
	})
	assert.Equal(t, []string{"c", "b"}, m.Cards())

	m = m.Apply([]spawn.Event{{Kind: spawn.EventComplete}}, dive.Snapshot{})
	assert.Empty(t, m.Cards())
}

func TestDiveKeys(t *testing.T) {
	m := lockscreen([]spawn.Event{
		{Kind: spawn.EventSpawn, Token: "a"},
		{Kind: spawn.EventSpawn, Token: "b"},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)
	assert.Equal(t, tui.TapNewestMsg{}, cmd())

	_, cmd = m.Update(runes("2"))
	require.NotNil(t, cmd)
	assert.Equal(t, tui.TapMsg{Token: "a"}, cmd())

	_, cmd = m.Update(runes("7"))
	assert.Nil(t, cmd, "no card at index 7")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tui.SurfaceMsg{}, cmd())
}

func TestDiveViewRendersStack(t *testing.T) {
	m := lockscreen([]spawn.Event{{Kind: spawn.EventSpawn, Token: "a", Elapsed: 3 * time.Second}})
	view := m.View()
	assert.Contains(t, view, "00:10")
	assert.Contains(t, view, notices[0].app)
	assert.Contains(t, view, notices[0].body)

	empty := lockscreen(nil)
	assert.Contains(t, empty.View(), "Stay with it")
}

func TestDiveViewGauges(t *testing.T) {
	m := NewDiveModel(dive.Snapshot{}, 100, 40)
	m = m.Apply(nil, dive.Snapshot{
		HasDepth:        true,
		Depth:           12.5,
		DepthLimit:      25,
		HasBudget:       true,
		BudgetRemaining: 3,
		BudgetQuota:     5,
	})
	view := m.View()
	assert.Contains(t, view, "12.5 m")
	assert.Contains(t, view, "●●●○○")
}

func TestCompleteView(t *testing.T) {
	r := dive.Result{ID: "d1", Score: 23, Tier: tier.DeepDiver, Elapsed: 25 * time.Minute, Spawned: 40, Taps: 1, Reason: dive.ReasonBudget}
	m := NewCompleteModel(r, 100, 40)
	view := m.View()
	assert.Contains(t, view, "DEEP DIVER")
	assert.Contains(t, view, "Tap budget spent")
	assert.NotContains(t, view, "personal best")

	m.SetRecorded(&history.Dive{ID: "d1"}, nil)
	assert.True(t, m.PersonalBest())
	assert.Contains(t, m.View(), "New personal best")

	m.SetRecorded(nil, errors.New("disk full"))
	assert.False(t, m.PersonalBest())
	assert.Contains(t, m.View(), "disk full")
}

func TestCompleteKeys(t *testing.T) {
	m := NewCompleteModel(dive.Result{Tier: tier.Surface}, 80, 24)
	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, tui.DiveAgainMsg{}, cmd())

	_, cmd = m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
