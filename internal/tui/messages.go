package tui

import (
	"github.com/freeflow-dev/freeflow/internal/history"
)

// ============================================================================
// Navigation Messages
// ============================================================================

// StartDiveMsg asks the app to start a dive with the named variant.
type StartDiveMsg struct {
	Variant string
}

// TapMsg reports a tap on a specific notification.
type TapMsg struct {
	Token string
}

// TapNewestMsg reports a tap on whatever notification is on top.
type TapNewestMsg struct{}

// SurfaceMsg aborts the running dive.
type SurfaceMsg struct{}

// DiveAgainMsg returns from the completion screen to onboarding.
type DiveAgainMsg struct{}

// ============================================================================
// Host Loop Messages
// ============================================================================

// LoopCallMsg carries a timer callback dequeued from the dive's clock loop.
// It must run on the Update goroutine.
type LoopCallMsg struct {
	Dive string
	Fn   func()
}

// PollMsg is returned when the loop had nothing queued; the listener is
// re-armed.
type PollMsg struct {
	Dive string
}

// HostTickMsg drives the session's periodic Tick.
type HostTickMsg struct {
	Dive string
}

// ============================================================================
// History Messages
// ============================================================================

// DiveRecordedMsg signals that a finished dive was stored.
type DiveRecordedMsg struct {
	Dive *history.Dive
	Best *history.Dive
	Err  error
}

// BestLoadedMsg carries the best stored dive, if any.
type BestLoadedMsg struct {
	Best *history.Dive
	Err  error
}

// ============================================================================
// Utility Messages
// ============================================================================

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}
