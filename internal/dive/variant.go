package dive

import (
	"time"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/spawn"
)

// ConfigFor builds a session Config from a configured variant.
func ConfigFor(name string, v config.Variant) Config {
	cfg := Config{
		Variant:  name,
		Duration: v.Duration(),
		Lifetime: v.Lifetime(),
		Pattern:  PatternFor(v),
	}
	if v.Depth.Enabled {
		cfg.Depth = &DepthConfig{
			MaxDepth:        v.Depth.MaxDepth,
			Penalty:         v.Depth.Penalty,
			MetersPerMinute: v.Depth.MetersPerMinute,
			PenaltyRecovers: v.Depth.PenaltyRecovers,
		}
	}
	if v.Budget.Enabled {
		cfg.Budget = v.Budget.Quota
	}
	return cfg
}

// PatternFor returns the spawn pattern a variant asks for.
func PatternFor(v config.Variant) spawn.Pattern {
	s := v.Spawn
	switch s.Mode {
	case config.ModeFixed:
		return spawn.Fixed{Interval: seconds(s.FixedInterval)}
	case config.ModeBurst:
		return spawn.NewBurst(s.BurstSize, seconds(s.BurstInterval), seconds(s.PauseInterval))
	default:
		return spawn.Decay{
			Start:    seconds(s.StartInterval),
			End:      seconds(s.EndInterval),
			K:        s.DecayConstant,
			Duration: v.Duration(),
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
