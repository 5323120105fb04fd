package spawn

import "time"

// Step describes the next scheduler wake-up: how long to wait and whether
// the wake-up produces a spawn.
type Step struct {
	Delay time.Duration
	Spawn bool
}

// Pattern decides the cadence of wake-ups. Next is called once per wake-up
// (and once at start) with the elapsed session time.
type Pattern interface {
	Next(elapsed time.Duration) Step
	Reset()
}

// Fixed spawns at a constant interval.
type Fixed struct {
	Interval time.Duration
}

// Next implements Pattern.
func (f Fixed) Next(time.Duration) Step {
	return Step{Delay: f.Interval, Spawn: true}
}

// Reset implements Pattern.
func (f Fixed) Reset() {}

// BurstPhase is the state of a Burst pattern.
type BurstPhase int

const (
	Bursting BurstPhase = iota
	Pausing
)

func (p BurstPhase) String() string {
	if p == Pausing {
		return "pausing"
	}
	return "bursting"
}

// Burst fires Size spawns Interval apart, then waits Pause without
// spawning, and repeats.
type Burst struct {
	Size     int
	Interval time.Duration
	Pause    time.Duration

	count int
	phase BurstPhase
}

// NewBurst creates a Burst pattern. A non-positive size is treated as one.
func NewBurst(size int, interval, pause time.Duration) *Burst {
	if size <= 0 {
		size = 1
	}
	return &Burst{Size: size, Interval: interval, Pause: pause}
}

// Next implements Pattern.
func (b *Burst) Next(time.Duration) Step {
	if b.count < b.Size {
		b.count++
		b.phase = Bursting
		return Step{Delay: b.Interval, Spawn: true}
	}
	b.count = 0
	b.phase = Pausing
	return Step{Delay: b.Pause, Spawn: false}
}

// Reset implements Pattern.
func (b *Burst) Reset() {
	b.count = 0
	b.phase = Bursting
}

// Phase reports whether the last scheduled step was part of a burst or the pause.
func (b *Burst) Phase() BurstPhase {
	return b.phase
}

// Count is the number of spawns scheduled in the current burst.
func (b *Burst) Count() int {
	return b.count
}
