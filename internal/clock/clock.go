// Package clock provides the host timing facility for dive sessions.
// Callbacks scheduled through a Clock are expected to run on a single
// goroutine so that sessions and schedulers need no locking.
package clock

import "time"

// Timer is a pending one-shot callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. Once Stop returns on the host goroutine
	// the callback will not run.
	Stop() bool
}

// Clock provides the current time and one-shot callback scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
