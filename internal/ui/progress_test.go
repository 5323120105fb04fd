package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/spawn"
	"github.com/freeflow-dev/freeflow/internal/tier"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59*time.Second + 900*time.Millisecond, "00:59"},
		{40 * time.Minute, "40:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{5*time.Minute + 32*time.Second, "5m 32s"},
		{time.Hour + 12*time.Minute + 5*time.Second, "1h 12m 5s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	snap := dive.Snapshot{
		Elapsed:         90 * time.Second,
		Duration:        25 * time.Minute,
		HasDepth:        true,
		Depth:           1.5,
		DepthLimit:      25,
		HasBudget:       true,
		BudgetRemaining: 4,
		BudgetQuota:     5,
		Live:            []string{"a", "b"},
	}
	got := FormatStatus(snap)
	want := "01:30 / 25:00  depth 1.5/25 m  budget 4/5  2 live"
	if got != want {
		t.Errorf("FormatStatus = %q, want %q", got, want)
	}
}

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPrinter(&buf)

	snap := dive.Snapshot{ID: "d1", Variant: "spam", Live: []string{"t1"}, Status: dive.StatusActive}
	p.Start(snap)
	p.Event(spawn.Event{Kind: spawn.EventSpawn, Token: "t1", Elapsed: 200 * time.Millisecond}, snap)
	p.Event(spawn.Event{Kind: spawn.EventDismiss, Token: "t1", Reason: spawn.ReasonTapped, Elapsed: 2 * time.Second}, snap)
	snap.Reason = dive.ReasonAborted
	p.Event(spawn.Event{Kind: spawn.EventComplete, Elapsed: 3 * time.Second}, snap)
	p.Status(snap)
	p.Finish(dive.Result{Tier: tier.Surface, Elapsed: 3 * time.Second, Spawned: 1, Taps: 1})

	out := buf.String()
	if strings.Contains(out, "\033") {
		t.Errorf("plain output contains escape codes: %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	if lines[0] != "diving: spam (open-ended) id=d1" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "[00:00] spawn   t1 (1 live)" {
		t.Errorf("spawn line = %q", lines[1])
	}
	if lines[2] != "[00:02] tapped  t1" {
		t.Errorf("tap line = %q", lines[2])
	}
	if lines[3] != "[00:03] complete (aborted)" {
		t.Errorf("complete line = %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "surfaced: Surface after 3s") {
		t.Errorf("finish line = %q", lines[4])
	}
}
