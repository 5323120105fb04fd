// Package report builds the summary shown after a dive and by `freeflow report`.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/log"
	"github.com/freeflow-dev/freeflow/internal/tier"
	"github.com/freeflow-dev/freeflow/internal/ui"
)

// Report holds the aggregated statistics for one finished dive.
type Report struct {
	DiveID          string
	Variant         string
	StartedAt       time.Time
	Elapsed         time.Duration
	Reason          string
	Score           float64
	Tier            tier.Tier
	Spawned         int
	Taps            int
	Expired         int
	BudgetRemaining int
	FirstTap        time.Duration // zero when the diver never tapped
	LongestStreak   time.Duration // longest gap without a tap
	PersonalBest    bool
}

// GenerateReport combines a stored dive with its journal entries and the
// current best dive. Missing journal entries leave the derived fields zero.
func GenerateReport(d history.Dive, events []log.LogEvent, best *history.Dive) *Report {
	r := &Report{
		DiveID:          d.ID,
		Variant:         d.Variant,
		StartedAt:       d.StartedAt,
		Elapsed:         d.Elapsed(),
		Reason:          d.Reason,
		Score:           d.Score,
		Tier:            d.Tier(),
		Spawned:         d.Spawned,
		Taps:            d.Taps,
		BudgetRemaining: d.BudgetRemaining,
	}
	if best != nil && best.ID == d.ID {
		r.PersonalBest = true
	}

	var last time.Duration
	for _, e := range events {
		if e.DiveID != d.ID {
			continue
		}
		switch e.Event {
		case log.EventDismiss:
			if e.Reason == "expired" {
				r.Expired++
			}
		case log.EventTap:
			at := time.Duration(e.ElapsedMs) * time.Millisecond
			if r.FirstTap == 0 {
				r.FirstTap = at
			}
			if gap := at - last; gap > r.LongestStreak {
				r.LongestStreak = gap
			}
			last = at
		}
	}
	if gap := r.Elapsed - last; gap > r.LongestStreak {
		r.LongestStreak = gap
	}

	return r
}

// FormatReport produces a terminal-friendly, human-readable summary string.
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString("  FreeFlow Dive Report\n")
	b.WriteString("========================================\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Dive:        %s\n", r.DiveID)
	fmt.Fprintf(&b, "Variant:     %s\n", r.Variant)
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Started:     %s\n", r.StartedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "Duration:    %s\n", ui.FormatDuration(r.Elapsed))
	if r.Reason != "" {
		fmt.Fprintf(&b, "Ended by:    %s\n", r.Reason)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Tier:        %s\n", r.Tier.Label)
	fmt.Fprintf(&b, "Depth:       %.1f m\n", r.Score)
	if r.PersonalBest {
		b.WriteString("             personal best\n")
	}
	fmt.Fprintf(&b, "  %s\n", r.Tier.Message)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Notifications: %d\n", r.Spawned)
	fmt.Fprintf(&b, "  Tapped:    %d\n", r.Taps)
	fmt.Fprintf(&b, "  Expired:   %d\n", r.Expired)
	if r.Reason == "budget" || r.BudgetRemaining > 0 {
		fmt.Fprintf(&b, "  Budget:    %d left\n", r.BudgetRemaining)
	}
	if r.FirstTap > 0 {
		fmt.Fprintf(&b, "First tap:   %s in\n", ui.FormatDuration(r.FirstTap))
	}
	if r.LongestStreak > 0 {
		fmt.Fprintf(&b, "Longest calm: %s\n", ui.FormatDuration(r.LongestStreak))
	}

	b.WriteString("========================================\n")

	return b.String()
}

// WriteReport writes the formatted report to {dir}/reports/{dive}.md.
// Creates the directory if it does not exist and returns the file path.
func WriteReport(dir string, r *Report) (string, error) {
	reportsDir := filepath.Join(dir, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	path := filepath.Join(reportsDir, r.DiveID+".md")
	if err := os.WriteFile(path, []byte(FormatReport(r)), 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	return path, nil
}
