// Package ui provides plain terminal output for freeflow.
// This file implements the line printer used by headless dives.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/spawn"
)

// Printer writes dive events as they happen. On a terminal it keeps a
// status line at the bottom that is redrawn in place.
type Printer struct {
	mu          sync.Mutex
	w           io.Writer
	isTTY       bool
	statusDrawn bool
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter() *Printer {
	return &Printer{
		w:     os.Stdout,
		isTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewPlainPrinter creates a Printer that never uses escape codes.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Start prints the dive header.
func (p *Printer) Start(snap dive.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	length := "open-ended"
	if snap.Duration > 0 {
		length = FormatDuration(snap.Duration)
	}
	p.line(fmt.Sprintf("diving: %s (%s) id=%s", snap.Variant, length, snap.ID))
}

// Event prints one scheduler event.
func (p *Printer) Event(e spawn.Event, snap dive.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.line(FormatEvent(e, snap))
	if p.isTTY && snap.Status == dive.StatusActive {
		p.status(snap)
	}
}

// Status redraws the status line. It does nothing off a terminal.
func (p *Printer) Status(snap dive.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTTY {
		p.status(snap)
	}
}

// Finish prints the closing summary.
func (p *Printer) Finish(r dive.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.line(fmt.Sprintf("surfaced: %s after %s, %.1f m, %d spawned, %d tapped",
		r.Tier.Label, FormatDuration(r.Elapsed), r.Score, r.Spawned, r.Taps))
	p.line("  " + r.Tier.Message)
}

// line prints a full line, clearing the status line first.
func (p *Printer) line(s string) {
	if p.isTTY && p.statusDrawn {
		fmt.Fprint(p.w, "\r\033[2K")
		p.statusDrawn = false
	}
	fmt.Fprintln(p.w, s)
}

func (p *Printer) status(snap dive.Snapshot) {
	fmt.Fprintf(p.w, "\r\033[2K\033[90m%s\033[0m", FormatStatus(snap))
	p.statusDrawn = true
}

// FormatEvent renders an event as a single plain line.
func FormatEvent(e spawn.Event, snap dive.Snapshot) string {
	at := FormatClock(e.Elapsed)
	switch e.Kind {
	case spawn.EventSpawn:
		return fmt.Sprintf("[%s] spawn   %s (%d live)", at, e.Token, len(snap.Live))
	case spawn.EventDismiss:
		return fmt.Sprintf("[%s] %-7s %s", at, e.Reason, e.Token)
	case spawn.EventComplete:
		reason := string(snap.Reason)
		if reason == "" {
			reason = "done"
		}
		return fmt.Sprintf("[%s] complete (%s)", at, reason)
	default:
		return fmt.Sprintf("[%s] %s", at, e.Kind)
	}
}

// FormatStatus renders the one-line dive status.
func FormatStatus(snap dive.Snapshot) string {
	parts := []string{FormatClock(snap.Elapsed)}
	if snap.Duration > 0 {
		parts[0] += " / " + FormatClock(snap.Duration)
	}
	if snap.HasDepth {
		parts = append(parts, fmt.Sprintf("depth %.1f/%.0f m", snap.Depth, snap.DepthLimit))
	}
	if snap.HasBudget {
		parts = append(parts, fmt.Sprintf("budget %d/%d", snap.BudgetRemaining, snap.BudgetQuota))
	}
	parts = append(parts, fmt.Sprintf("%d live", len(snap.Live)))
	return strings.Join(parts, "  ")
}

// FormatClock renders a duration as MM:SS, or H:MM:SS past an hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatDuration produces a human-readable duration string such as "5m 32s"
// or "1h 12m 5s". Sub-second durations are shown as "< 1s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
