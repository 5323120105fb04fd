package log

import (
	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/spawn"
)

// DiveStarted is the journal entry written when a session starts.
func DiveStarted(s *dive.Session) LogEvent {
	snap := s.Snapshot()
	return LogEvent{
		Event:   EventDiveStarted,
		DiveID:  snap.ID,
		Variant: snap.Variant,
		Budget:  snap.BudgetQuota,
	}
}

// DiveEvents converts drained session events into journal entries. Depth
// is stamped from the current snapshot and the completion entry carries
// the final result.
func DiveEvents(s *dive.Session, events []spawn.Event) []LogEvent {
	out := make([]LogEvent, 0, len(events))
	snap := s.Snapshot()
	for _, e := range events {
		entry := FromEvent(s.ID(), e)
		if e.Kind == spawn.EventComplete {
			r := s.Result()
			entry.Reason = string(r.Reason)
			entry.Score = r.Score
			entry.Tier = r.Tier.Name
			entry.Taps = r.Taps
			entry.Spawned = r.Spawned
			entry.Budget = r.BudgetRemaining
		} else if snap.HasDepth {
			entry.Depth = snap.Depth
		}
		out = append(out, entry)
	}
	return out
}

// AppendAll appends entries in order, stopping at the first error.
func (l *Logger) AppendAll(entries []LogEvent) error {
	for _, e := range entries {
		if err := l.Append(e); err != nil {
			return err
		}
	}
	return nil
}
