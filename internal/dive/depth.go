package dive

import "time"

// DepthConfig parameterizes the depth gauge.
type DepthConfig struct {
	MaxDepth        float64 // metres
	Penalty         float64 // metres removed per tap
	MetersPerMinute float64 // natural descent rate; zero means 1
	// PenaltyRecovers makes natural growth ignore past penalties, so depth
	// climbs straight back on the next tick.
	PenaltyRecovers bool
}

// Depth tracks current and deepest depth. 0 <= Current <= MaxDepth holds
// after every mutation, and Max never falls below Current.
type Depth struct {
	cfg     DepthConfig
	current float64
	max     float64
	debt    float64
}

// NewDepth creates a gauge at the surface.
func NewDepth(cfg DepthConfig) *Depth {
	if cfg.MetersPerMinute <= 0 {
		cfg.MetersPerMinute = 1
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.Penalty < 0 {
		cfg.Penalty = 0
	}
	return &Depth{cfg: cfg}
}

// Grow applies natural descent for the given elapsed time. Growth never
// lowers the current depth.
func (d *Depth) Grow(elapsed time.Duration) {
	target := elapsed.Minutes() * d.cfg.MetersPerMinute
	if !d.cfg.PenaltyRecovers {
		target -= d.debt
	}
	target = d.clamp(target)
	if target > d.current {
		d.current = target
	}
	d.track()
}

// Penalize removes the configured penalty and returns the metres actually
// lost.
func (d *Depth) Penalize() float64 {
	lost := d.cfg.Penalty
	if lost > d.current {
		lost = d.current
	}
	d.current = d.clamp(d.current - lost)
	d.debt += lost
	d.track()
	return lost
}

// Current is the present depth in metres.
func (d *Depth) Current() float64 { return d.current }

// Max is the deepest point reached.
func (d *Depth) Max() float64 { return d.max }

// Limit is the configured maximum depth.
func (d *Depth) Limit() float64 { return d.cfg.MaxDepth }

// Fraction is Current as a share of the limit, for gauges.
func (d *Depth) Fraction() float64 {
	if d.cfg.MaxDepth == 0 {
		return 0
	}
	return d.current / d.cfg.MaxDepth
}

func (d *Depth) clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > d.cfg.MaxDepth {
		return d.cfg.MaxDepth
	}
	return v
}

func (d *Depth) track() {
	if d.current > d.max {
		d.max = d.current
	}
}
