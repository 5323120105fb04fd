package dive

import (
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeflow-dev/freeflow/internal/clock"
	"github.com/freeflow-dev/freeflow/internal/spawn"
	"github.com/freeflow-dev/freeflow/internal/tier"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func tokens() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("b%d", n)
	}
}

func newSession(cfg Config) (*Session, *clock.Fake) {
	clk := clock.NewFake(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	cfg.NewToken = tokens()
	cfg.Logger = quietLogger()
	return New(cfg, clk), clk
}

// run advances the fake clock one host tick at a time.
func run(s *Session, clk *clock.Fake, d time.Duration) {
	for step := time.Duration(0); step < d; step += time.Second {
		clk.Advance(time.Second)
		s.Tick()
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, clk := newSession(Config{Variant: "lockscreen", Pattern: spawn.Fixed{Interval: 3 * time.Second}})
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, time.Duration(0), s.Elapsed())

	require.NoError(t, s.Start())
	assert.Equal(t, StatusActive, s.Status())

	run(s, clk, 10*time.Second)
	assert.Equal(t, 10*time.Second, s.Elapsed())
	assert.Equal(t, 3, s.Snapshot().Spawned)

	s.Stop()
	assert.Equal(t, StatusComplete, s.Status())
	assert.Equal(t, ReasonAborted, s.Reason())
	events := s.Drain()
	require.NotEmpty(t, events)
	assert.Equal(t, spawn.EventComplete, events[len(events)-1].Kind)

	run(s, clk, time.Minute)
	assert.Empty(t, s.Drain())
	assert.Equal(t, 10*time.Second, s.Elapsed())
}

func TestSessionStartTwice(t *testing.T) {
	s, _ := newSession(Config{Pattern: spawn.Fixed{Interval: time.Second}})
	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), spawn.ErrArmed)
}

func TestSessionBudgetEndsAfterQuota(t *testing.T) {
	s, clk := newSession(Config{
		Variant:  "budget",
		Duration: 25 * time.Minute,
		Lifetime: -1,
		Pattern:  spawn.Fixed{Interval: time.Second},
		Budget:   5,
	})
	require.NoError(t, s.Start())
	run(s, clk, 10*time.Second)
	require.Len(t, s.Live(), 10)

	for i := 0; i < 4; i++ {
		assert.True(t, s.TapNewest())
		assert.Equal(t, StatusActive, s.Status())
	}
	assert.Equal(t, 1, s.Snapshot().BudgetRemaining)

	assert.True(t, s.TapNewest())
	assert.Equal(t, StatusComplete, s.Status())
	assert.Equal(t, ReasonBudget, s.Reason())
	assert.Equal(t, 0, s.Snapshot().BudgetRemaining)

	assert.False(t, s.TapNewest())
	assert.False(t, s.Tap("b1"))
	assert.Equal(t, 5, s.Result().Taps)
	assert.Equal(t, 0, s.Result().BudgetRemaining)

	s.Drain()
	run(s, clk, time.Minute)
	assert.Empty(t, s.Drain())
}

func TestSessionTapIgnoresUnknownToken(t *testing.T) {
	s, clk := newSession(Config{Pattern: spawn.Fixed{Interval: time.Second}, Budget: 3})
	assert.False(t, s.Tap("b1"), "idle session")

	require.NoError(t, s.Start())
	run(s, clk, 2*time.Second)
	assert.False(t, s.Tap("missing"))
	assert.Equal(t, 3, s.Snapshot().BudgetRemaining)
	assert.True(t, s.Tap("b1"))
	assert.Equal(t, 2, s.Snapshot().BudgetRemaining)
}

func TestSessionEndsAtDuration(t *testing.T) {
	s, clk := newSession(Config{
		Duration: time.Minute,
		Pattern:  spawn.Fixed{Interval: 10 * time.Second},
	})
	require.NoError(t, s.Start())
	run(s, clk, 90*time.Second)

	assert.Equal(t, StatusComplete, s.Status())
	assert.Equal(t, ReasonDuration, s.Reason())
	assert.Equal(t, time.Minute, s.Elapsed())

	completes := 0
	for _, e := range s.Drain() {
		if e.Kind == spawn.EventComplete {
			completes++
		}
	}
	assert.Equal(t, 1, completes)
}

func TestSessionTickEndsLongDecayInterval(t *testing.T) {
	s, clk := newSession(Config{
		Duration: 2 * time.Minute,
		Pattern: spawn.Decay{
			Start:    time.Minute,
			End:      10 * time.Minute,
			K:        4,
			Duration: 2 * time.Minute,
		},
	})
	require.NoError(t, s.Start())
	run(s, clk, 2*time.Minute)

	assert.Equal(t, StatusComplete, s.Status())
	assert.Equal(t, 2*time.Minute, s.Elapsed())
}

func TestSessionDepthGrowthAndPenalty(t *testing.T) {
	s, clk := newSession(Config{
		Duration: 25 * time.Minute,
		Lifetime: -1,
		Pattern:  spawn.Fixed{Interval: 30 * time.Second},
		Depth:    &DepthConfig{MaxDepth: 25, Penalty: 2},
	})
	require.NoError(t, s.Start())
	run(s, clk, 10*time.Minute)
	assert.InDelta(t, 10.0, s.Snapshot().Depth, 1e-9)

	require.True(t, s.TapNewest())
	assert.InDelta(t, 8.0, s.Snapshot().Depth, 1e-9)
	assert.InDelta(t, 10.0, s.Snapshot().MaxDepth, 1e-9)

	run(s, clk, time.Minute)
	assert.InDelta(t, 9.0, s.Snapshot().Depth, 1e-9)

	run(s, clk, 20*time.Minute)
	assert.Equal(t, StatusComplete, s.Status())
	assert.InDelta(t, 23.0, s.Result().Score, 1e-9)
	assert.Equal(t, tier.DeepDiver, s.Result().Tier)
}

func TestSessionScoreWithoutDepth(t *testing.T) {
	s, clk := newSession(Config{Duration: 40 * time.Minute, Pattern: spawn.Fixed{Interval: time.Minute}})
	require.NoError(t, s.Start())
	run(s, clk, 12*time.Minute)
	s.Stop()

	r := s.Result()
	assert.InDelta(t, 12.0, r.Score, 1e-9)
	assert.Equal(t, tier.ReefDiver, r.Tier)
	assert.Equal(t, ReasonAborted, r.Reason)
	assert.Equal(t, 12*time.Minute, r.EndedAt.Sub(r.StartedAt))
}

func TestSessionDepthStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, recovers := range []bool{false, true} {
		s, clk := newSession(Config{
			Duration: 30 * time.Minute,
			Lifetime: -1,
			Pattern:  spawn.Fixed{Interval: 5 * time.Second},
			Depth:    &DepthConfig{MaxDepth: 12, Penalty: 3, PenaltyRecovers: recovers},
		})
		require.NoError(t, s.Start())
		for i := 0; i < 2000 && s.Status() == StatusActive; i++ {
			clk.Advance(time.Duration(rng.Intn(3000)) * time.Millisecond)
			s.Tick()
			if rng.Intn(3) == 0 {
				s.TapNewest()
			}
			snap := s.Snapshot()
			assert.GreaterOrEqual(t, snap.Depth, 0.0)
			assert.LessOrEqual(t, snap.Depth, 12.0)
			assert.GreaterOrEqual(t, snap.MaxDepth, snap.Depth)
		}
	}
}
