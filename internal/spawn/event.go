package spawn

import "time"

// EventKind identifies what a scheduler event reports.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventDismiss
	EventComplete
)

func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventDismiss:
		return "dismiss"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// DismissReason explains why a live spawn went away.
type DismissReason string

const (
	ReasonExpired DismissReason = "expired"
	ReasonTapped  DismissReason = "tapped"
)

// Event is emitted by the Scheduler to its Sink.
type Event struct {
	Seq     int
	Kind    EventKind
	Token   string
	Elapsed time.Duration
	Reason  DismissReason
}

// Sink receives scheduler events. Emit runs on the host goroutine and must
// not block.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) { f(e) }
