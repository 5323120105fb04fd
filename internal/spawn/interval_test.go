package spawn

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func week1() Decay {
	return Decay{
		Start:    200 * time.Millisecond,
		End:      120 * time.Second,
		K:        4.0,
		Duration: 2400 * time.Second,
	}
}

func TestDecayStartsAtStartInterval(t *testing.T) {
	d := week1()
	assert.Equal(t, 200*time.Millisecond, d.Interval(0))
	assert.Equal(t, 0.2, d.IntervalSeconds(0))
}

func TestDecayMidSession(t *testing.T) {
	d := week1()
	want := 0.2 + 119.8*(1-math.Exp(-2))
	assert.InDelta(t, want, d.IntervalSeconds(1200), 1e-9)
	assert.InDelta(t, 103.787, d.IntervalSeconds(1200), 0.001)
}

func TestDecayIsNonDecreasing(t *testing.T) {
	d := week1()
	prev := d.IntervalSeconds(0)
	for s := 1.0; s <= 2400; s++ {
		cur := d.IntervalSeconds(s)
		if cur < prev {
			t.Fatalf("IntervalSeconds(%v) = %v, less than previous %v", s, cur, prev)
		}
		prev = cur
	}
}

func TestDecayClampsPastDuration(t *testing.T) {
	d := week1()
	end := d.IntervalSeconds(2400)
	assert.Equal(t, end, d.IntervalSeconds(5000))
	assert.Less(t, end, 120.0)
	assert.Equal(t, d.IntervalSeconds(0), d.IntervalSeconds(-30))
}

func TestDecayZeroDurationHoldsStart(t *testing.T) {
	d := Decay{Start: time.Second, End: time.Minute, K: 4}
	assert.Equal(t, time.Second, d.Interval(time.Hour))
}

func TestBurstPattern(t *testing.T) {
	b := NewBurst(3, 200*time.Millisecond, 7*time.Second)

	var steps []Step
	for i := 0; i < 8; i++ {
		steps = append(steps, b.Next(0))
	}
	burst := Step{Delay: 200 * time.Millisecond, Spawn: true}
	pause := Step{Delay: 7 * time.Second, Spawn: false}
	assert.Equal(t, []Step{burst, burst, burst, pause, burst, burst, burst, pause}, steps)
	assert.Equal(t, Pausing, b.Phase())

	b.Reset()
	assert.Equal(t, 0, b.Count())
	assert.Equal(t, burst, b.Next(0))
	assert.Equal(t, Bursting, b.Phase())
}

func TestNewBurstDefaultsSize(t *testing.T) {
	b := NewBurst(0, time.Second, time.Second)
	assert.Equal(t, 1, b.Size)
}

func TestFixedPattern(t *testing.T) {
	f := Fixed{Interval: 3 * time.Second}
	assert.Equal(t, Step{Delay: 3 * time.Second, Spawn: true}, f.Next(time.Hour))
}
