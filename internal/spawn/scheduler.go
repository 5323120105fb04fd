package spawn

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/freeflow-dev/freeflow/internal/clock"
)

// ErrArmed is returned by Start when the scheduler is already running.
var ErrArmed = errors.New("scheduler already armed")

// DefaultLifetime is how long a spawn stays live before it expires.
const DefaultLifetime = 5 * time.Second

// State is the scheduler state.
type State int

const (
	StateIdle State = iota
	StateArmed
)

func (s State) String() string {
	if s == StateArmed {
		return "armed"
	}
	return "idle"
}

// Options configures a Scheduler.
type Options struct {
	// Duration ends the session on the first wake-up at or after it.
	// Zero means the scheduler runs until stopped.
	Duration time.Duration
	// Lifetime is how long each spawn stays live. Zero uses DefaultLifetime;
	// negative disables expiry.
	Lifetime time.Duration
	// NewToken overrides token generation.
	NewToken func() string
}

type liveSpawn struct {
	token  string
	expiry clock.Timer
}

// Scheduler arms one-shot wake-ups on a Clock according to a Pattern and
// emits spawn, dismiss and complete events to a Sink.
//
// Scheduler is not safe for concurrent use. All methods and all clock
// callbacks must run on the same host goroutine.
type Scheduler struct {
	clock   clock.Clock
	pattern Pattern
	opts    Options
	sink    Sink

	state   State
	start   time.Time
	step    Step
	pending clock.Timer
	gen     uint64
	seq     int
	spawned int
	live    []*liveSpawn
}

// NewScheduler creates an idle Scheduler.
func NewScheduler(clk clock.Clock, p Pattern, opts Options, sink Sink) *Scheduler {
	if opts.Lifetime == 0 {
		opts.Lifetime = DefaultLifetime
	}
	if opts.NewToken == nil {
		opts.NewToken = uuid.NewString
	}
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	return &Scheduler{
		clock:   clk,
		pattern: p,
		opts:    opts,
		sink:    sink,
	}
}

// Start records the start time and arms the first wake-up.
func (s *Scheduler) Start() error {
	if s.state == StateArmed {
		return ErrArmed
	}
	s.state = StateArmed
	s.start = s.clock.Now()
	s.spawned = 0
	s.pattern.Reset()
	s.step = s.pattern.Next(0)
	s.arm(s.step.Delay)
	return nil
}

// Stop cancels the pending wake-up and every live spawn. No event is
// emitted after Stop returns.
func (s *Scheduler) Stop() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	for _, ls := range s.live {
		if ls.expiry != nil {
			ls.expiry.Stop()
		}
	}
	s.live = nil
	s.state = StateIdle
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	return s.state
}

// Elapsed returns the time since Start, or zero before the first Start.
func (s *Scheduler) Elapsed() time.Duration {
	if s.start.IsZero() {
		return 0
	}
	return s.clock.Now().Sub(s.start)
}

// StartedAt returns the time of the last Start.
func (s *Scheduler) StartedAt() time.Time {
	return s.start
}

// NextStep returns the step currently armed.
func (s *Scheduler) NextStep() Step {
	return s.step
}

// Spawned is the number of spawns since the last Start.
func (s *Scheduler) Spawned() int {
	return s.spawned
}

// Live returns the tokens of live spawns, oldest first.
func (s *Scheduler) Live() []string {
	tokens := make([]string, len(s.live))
	for i, ls := range s.live {
		tokens[i] = ls.token
	}
	return tokens
}

// Dismiss removes a live spawn and emits a dismiss event. It reports false
// if token is not live.
func (s *Scheduler) Dismiss(token string, reason DismissReason) bool {
	for i, ls := range s.live {
		if ls.token != token {
			continue
		}
		if ls.expiry != nil {
			ls.expiry.Stop()
		}
		s.live = append(s.live[:i], s.live[i+1:]...)
		s.emit(Event{Kind: EventDismiss, Token: token, Reason: reason})
		return true
	}
	return false
}

func (s *Scheduler) arm(delay time.Duration) {
	gen := s.gen
	s.pending = s.clock.AfterFunc(delay, func() {
		if gen != s.gen || s.state != StateArmed {
			return
		}
		s.wake()
	})
}

func (s *Scheduler) wake() {
	s.pending = nil
	elapsed := s.Elapsed()
	if s.opts.Duration > 0 && elapsed >= s.opts.Duration {
		s.Stop()
		s.emit(Event{Kind: EventComplete})
		return
	}
	if s.step.Spawn {
		s.spawn()
	}
	s.step = s.pattern.Next(elapsed)
	s.arm(s.step.Delay)
}

func (s *Scheduler) spawn() {
	ls := &liveSpawn{token: s.opts.NewToken()}
	if s.opts.Lifetime > 0 {
		gen := s.gen
		token := ls.token
		ls.expiry = s.clock.AfterFunc(s.opts.Lifetime, func() {
			if gen != s.gen {
				return
			}
			s.Dismiss(token, ReasonExpired)
		})
	}
	s.live = append(s.live, ls)
	s.spawned++
	s.emit(Event{Kind: EventSpawn, Token: ls.token})
}

func (s *Scheduler) emit(e Event) {
	s.seq++
	e.Seq = s.seq
	e.Elapsed = s.Elapsed()
	s.sink.Emit(e)
}
