// Package dive implements a single dive session: the spawn scheduler plus
// the depth, budget and elapsed-time state that the host renders.
package dive

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/freeflow-dev/freeflow/internal/clock"
	"github.com/freeflow-dev/freeflow/internal/spawn"
	"github.com/freeflow-dev/freeflow/internal/tier"
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusActive
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusComplete:
		return "complete"
	default:
		return "idle"
	}
}

// EndReason records why a dive ended.
type EndReason string

const (
	ReasonNone     EndReason = ""
	ReasonDuration EndReason = "duration"
	ReasonBudget   EndReason = "budget"
	ReasonAborted  EndReason = "aborted"
)

// Config describes one dive.
type Config struct {
	Variant  string
	Duration time.Duration // zero for open-ended dives
	Lifetime time.Duration // spawn lifetime, see spawn.Options
	Pattern  spawn.Pattern
	Depth    *DepthConfig // nil disables the depth gauge
	Budget   int          // zero disables the tap budget

	NewToken func() string
	Logger   logrus.FieldLogger
}

// Session owns every piece of state for one dive. Like the scheduler it
// wraps, it must only be used from the host goroutine.
type Session struct {
	id     string
	cfg    Config
	clock  clock.Clock
	sched  *spawn.Scheduler
	depth  *Depth
	budget *Budget
	log    logrus.FieldLogger

	status    Status
	reason    EndReason
	startedAt time.Time
	endedAt   time.Time
	taps      int
	seq       int
	queue     []spawn.Event
}

// New creates an idle session.
func New(cfg Config, clk clock.Clock) *Session {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	s := &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		clock: clk,
	}
	s.log = cfg.Logger.WithFields(logrus.Fields{"dive": s.id, "variant": cfg.Variant})
	if cfg.Depth != nil {
		s.depth = NewDepth(*cfg.Depth)
	}
	if cfg.Budget > 0 {
		s.budget = NewBudget(cfg.Budget)
	}
	s.sched = spawn.NewScheduler(clk, cfg.Pattern, spawn.Options{
		Duration: cfg.Duration,
		Lifetime: cfg.Lifetime,
		NewToken: cfg.NewToken,
	}, spawn.SinkFunc(s.receive))
	return s
}

// ID is the unique session identifier.
func (s *Session) ID() string { return s.id }

// Variant is the configured variant name.
func (s *Session) Variant() string { return s.cfg.Variant }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Reason returns why the dive ended, or ReasonNone while it runs.
func (s *Session) Reason() EndReason { return s.reason }

// Start begins the dive.
func (s *Session) Start() error {
	if err := s.sched.Start(); err != nil {
		return err
	}
	s.status = StatusActive
	s.reason = ReasonNone
	s.startedAt = s.sched.StartedAt()
	s.endedAt = time.Time{}
	s.log.WithField("duration", s.cfg.Duration).Debug("dive started")
	return nil
}

// Tick is called by the host on every periodic tick. It applies natural
// depth growth and ends the dive once the target duration is reached.
func (s *Session) Tick() {
	if s.status != StatusActive {
		return
	}
	elapsed := s.Elapsed()
	if s.depth != nil {
		grow := elapsed
		if s.cfg.Duration > 0 && grow > s.cfg.Duration {
			grow = s.cfg.Duration
		}
		s.depth.Grow(grow)
	}
	if s.cfg.Duration > 0 && elapsed >= s.cfg.Duration {
		s.finish(ReasonDuration)
	}
}

// Tap reports a user interaction with a live spawn. It returns false when
// the dive is not active or the token is not live.
func (s *Session) Tap(token string) bool {
	if s.status != StatusActive {
		return false
	}
	if !s.sched.Dismiss(token, spawn.ReasonTapped) {
		return false
	}
	s.taps++
	if s.depth != nil {
		lost := s.depth.Penalize()
		s.log.WithFields(logrus.Fields{"lost": lost, "depth": s.depth.Current()}).Debug("depth penalty")
	}
	if s.budget != nil {
		s.budget.Consume()
		if s.budget.Exhausted() {
			s.finish(ReasonBudget)
		}
	}
	return true
}

// TapNewest taps the most recent live spawn.
func (s *Session) TapNewest() bool {
	live := s.sched.Live()
	if len(live) == 0 {
		return false
	}
	return s.Tap(live[len(live)-1])
}

// Stop aborts an active dive. Calling Stop on a finished or idle session
// only makes sure no timers remain.
func (s *Session) Stop() {
	if s.status == StatusActive {
		s.finish(ReasonAborted)
		return
	}
	s.sched.Stop()
}

// Drain returns and clears the queued events.
func (s *Session) Drain() []spawn.Event {
	events := s.queue
	s.queue = nil
	return events
}

// Elapsed returns time spent in the dive, frozen once it ends.
func (s *Session) Elapsed() time.Duration {
	switch s.status {
	case StatusIdle:
		return 0
	case StatusComplete:
		return s.endedAt.Sub(s.startedAt)
	default:
		return s.clock.Now().Sub(s.startedAt)
	}
}

// Live returns live spawn tokens, oldest first.
func (s *Session) Live() []string {
	return s.sched.Live()
}

// Score is the value used for tier classification: the deepest point when
// the depth gauge is enabled, otherwise one metre per minute dived.
func (s *Session) Score() float64 {
	if s.depth != nil {
		return s.depth.Max()
	}
	elapsed := s.Elapsed()
	if s.cfg.Duration > 0 && elapsed > s.cfg.Duration {
		elapsed = s.cfg.Duration
	}
	return elapsed.Minutes()
}

// Snapshot captures the state the host needs for one frame.
type Snapshot struct {
	ID              string
	Variant         string
	Status          Status
	Reason          EndReason
	Elapsed         time.Duration
	Duration        time.Duration
	Depth           float64
	MaxDepth        float64
	DepthLimit      float64
	HasDepth        bool
	BudgetRemaining int
	BudgetQuota     int
	HasBudget       bool
	Live            []string
	Spawned         int
	Taps            int
	NextStep        spawn.Step
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.id,
		Variant:  s.cfg.Variant,
		Status:   s.status,
		Reason:   s.reason,
		Elapsed:  s.Elapsed(),
		Duration: s.cfg.Duration,
		Live:     s.sched.Live(),
		Spawned:  s.sched.Spawned(),
		Taps:     s.taps,
		NextStep: s.sched.NextStep(),
	}
	if s.depth != nil {
		snap.HasDepth = true
		snap.Depth = s.depth.Current()
		snap.MaxDepth = s.depth.Max()
		snap.DepthLimit = s.depth.Limit()
	}
	if s.budget != nil {
		snap.HasBudget = true
		snap.BudgetRemaining = s.budget.Remaining()
		snap.BudgetQuota = s.budget.Quota()
	}
	return snap
}

// Result summarizes a finished dive.
type Result struct {
	ID              string
	Variant         string
	StartedAt       time.Time
	EndedAt         time.Time
	Elapsed         time.Duration
	Score           float64
	Spawned         int
	Taps            int
	BudgetRemaining int
	Reason          EndReason
	Tier            tier.Tier
}

// Result returns the dive summary. It is meaningful once the dive ended.
func (s *Session) Result() Result {
	r := Result{
		ID:        s.id,
		Variant:   s.cfg.Variant,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		Elapsed:   s.Elapsed(),
		Score:     s.Score(),
		Spawned:   s.sched.Spawned(),
		Taps:      s.taps,
		Reason:    s.reason,
	}
	if s.budget != nil {
		r.BudgetRemaining = s.budget.Remaining()
	}
	r.Tier = tier.Classify(r.Score)
	return r
}

// receive is the scheduler sink.
func (s *Session) receive(e spawn.Event) {
	if e.Kind == spawn.EventComplete {
		// The scheduler already stopped itself.
		s.complete(ReasonDuration)
	}
	s.enqueue(e)
}

func (s *Session) finish(reason EndReason) {
	s.sched.Stop()
	s.complete(reason)
	s.enqueue(spawn.Event{Kind: spawn.EventComplete, Elapsed: s.Elapsed()})
}

func (s *Session) complete(reason EndReason) {
	if s.status != StatusActive {
		return
	}
	now := s.clock.Now()
	if s.depth != nil {
		grow := now.Sub(s.startedAt)
		if s.cfg.Duration > 0 && grow > s.cfg.Duration {
			grow = s.cfg.Duration
		}
		s.depth.Grow(grow)
	}
	s.status = StatusComplete
	s.reason = reason
	s.endedAt = now
	s.log.WithFields(logrus.Fields{
		"reason":  reason,
		"elapsed": s.Elapsed(),
		"taps":    s.taps,
	}).Info("dive complete")
}

func (s *Session) enqueue(e spawn.Event) {
	s.seq++
	e.Seq = s.seq
	s.queue = append(s.queue, e)
}
