// Package log provides the dive journal.
// This file appends JSON events to log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/freeflow-dev/freeflow/internal/spawn"
)

// Event type constants.
const (
	EventDiveStarted  = "dive_started"
	EventSpawn        = "spawn"
	EventDismiss      = "dismiss"
	EventTap          = "tap"
	EventDiveComplete = "dive_complete"
)

// LogEvent represents a single structured event written to the journal.
type LogEvent struct {
	Time      time.Time `json:"time"`
	Event     string    `json:"event"`
	DiveID    string    `json:"dive,omitempty"`
	Variant   string    `json:"variant,omitempty"`
	Seq       int       `json:"seq,omitempty"`
	Token     string    `json:"token,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms,omitempty"`
	Depth     float64   `json:"depth,omitempty"`
	Budget    int       `json:"budget,omitempty"`
	Score     float64   `json:"score,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Taps      int       `json:"taps,omitempty"`
	Spawned   int       `json:"spawned,omitempty"`
}

// FromEvent converts a scheduler event into a journal entry. Tapped
// dismissals are journalled as taps.
func FromEvent(diveID string, e spawn.Event) LogEvent {
	le := LogEvent{
		DiveID:    diveID,
		Seq:       e.Seq,
		Token:     e.Token,
		ElapsedMs: e.Elapsed.Milliseconds(),
	}
	switch e.Kind {
	case spawn.EventSpawn:
		le.Event = EventSpawn
	case spawn.EventDismiss:
		le.Event = EventDismiss
		if e.Reason == spawn.ReasonTapped {
			le.Event = EventTap
		}
		le.Reason = string(e.Reason)
	case spawn.EventComplete:
		le.Event = EventDiveComplete
	}
	return le
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to log.jsonl inside dir, creating
// dir if needed. Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(dir, "log.jsonl"),
	}, nil
}

// Path returns the journal file location.
func (l *Logger) Path() string { return l.path }

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is set to time.Now().UTC().
func (l *Logger) Append(event LogEvent) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	return l.read(func(LogEvent) bool { return true })
}

// ReadDive returns the journal entries of one dive.
func (l *Logger) ReadDive(diveID string) ([]LogEvent, error) {
	return l.read(func(e LogEvent) bool { return e.DiveID == diveID })
}

func (l *Logger) read(keep func(LogEvent) bool) ([]LogEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	events := []LogEvent{}
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		if keep(event) {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}
