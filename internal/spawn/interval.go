// Package spawn schedules simulated notification spawns over a dive.
package spawn

import (
	"math"
	"time"
)

// Decay maps session progress onto a spawn interval that grows from Start
// toward End along an exponential saturation curve:
//
//	interval = Start + (End - Start) * (1 - e^(-K * t)),  t = clamp(elapsed/Duration, 0, 1)
//
// Decay is also a Pattern: every wake-up spawns and the next wait is the
// interval at the current elapsed time.
type Decay struct {
	Start    time.Duration
	End      time.Duration
	K        float64
	Duration time.Duration
}

// Interval returns the spawn interval at the given elapsed session time.
func (d Decay) Interval(elapsed time.Duration) time.Duration {
	return secondsToDuration(d.IntervalSeconds(elapsed.Seconds()))
}

// IntervalSeconds is Interval over plain seconds.
func (d Decay) IntervalSeconds(elapsed float64) float64 {
	start := d.Start.Seconds()
	if elapsed <= 0 || d.Duration <= 0 {
		return start
	}
	t := elapsed / d.Duration.Seconds()
	if t > 1 {
		t = 1
	}
	return start + (d.End.Seconds()-start)*(1-math.Exp(-d.K*t))
}

// Next implements Pattern.
func (d Decay) Next(elapsed time.Duration) Step {
	return Step{Delay: d.Interval(elapsed), Spawn: true}
}

// Reset implements Pattern. Decay carries no state.
func (d Decay) Reset() {}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
