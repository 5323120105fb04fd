// Package history provides SQLite-backed persistence for finished dives.
package history

import (
	"time"

	"github.com/freeflow-dev/freeflow/internal/tier"
)

// Dive is one finished dive as stored in the history database.
type Dive struct {
	ID              string
	Variant         string
	StartedAt       time.Time
	EndedAt         time.Time
	ElapsedMs       int64
	Score           float64
	TierName        string
	Reason          string // duration, budget, aborted
	Spawned         int
	Taps            int
	BudgetRemaining int
}

// Elapsed returns the dive length.
func (d Dive) Elapsed() time.Duration {
	return time.Duration(d.ElapsedMs) * time.Millisecond
}

// Tier resolves the stored tier name, falling back to a fresh
// classification of the score.
func (d Dive) Tier() tier.Tier {
	if t, ok := tier.ByName(d.TierName); ok {
		return t
	}
	return tier.Classify(d.Score)
}

// Summary provides a high-level view of a dive for listing.
type Summary struct {
	ID      string
	Variant string
	Score   float64
	Tier    string
	Taps    int
	EndedAt time.Time
}
