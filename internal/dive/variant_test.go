package dive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/spawn"
)

func TestConfigForPresets(t *testing.T) {
	def := config.DefaultConfig()

	week1 := ConfigFor("week1", def.Variants["week1"])
	assert.Equal(t, 40*time.Minute, week1.Duration)
	assert.Equal(t, 5*time.Second, week1.Lifetime)
	assert.Nil(t, week1.Depth)
	assert.Zero(t, week1.Budget)
	decay, ok := week1.Pattern.(spawn.Decay)
	require.True(t, ok)
	assert.Equal(t, 200*time.Millisecond, decay.Start)
	assert.Equal(t, 2*time.Minute, decay.End)

	lock := ConfigFor("lockscreen", def.Variants["lockscreen"])
	assert.Equal(t, spawn.Fixed{Interval: 3 * time.Second}, lock.Pattern)
	assert.Zero(t, lock.Duration)

	spam := ConfigFor("spam", def.Variants["spam"])
	burst, ok := spam.Pattern.(*spawn.Burst)
	require.True(t, ok)
	assert.Equal(t, 5, burst.Size)
	assert.Equal(t, 7*time.Second, burst.Pause)

	depth := ConfigFor("depth", def.Variants["depth"])
	require.NotNil(t, depth.Depth)
	assert.Equal(t, 25.0, depth.Depth.MaxDepth)
	assert.Equal(t, 2.0, depth.Depth.Penalty)

	budget := ConfigFor("budget", def.Variants["budget"])
	assert.Equal(t, 5, budget.Budget)
}
