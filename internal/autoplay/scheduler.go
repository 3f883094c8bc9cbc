// Package autoplay decides, at every fire of a single recurring timer, whether
// a carousel should automatically move to its next item.
//
// Suspension is modelled as a set of named reasons rather than one shared
// flag: hover, focus, manual interaction and tab visibility each own one
// reason, and the timer may advance the carousel only while the set is empty.
// Apart from manual interaction, which tears the timer down, suspension never
// stops the timer; it only turns individual ticks into no-ops.
//
// A Scheduler is not safe for concurrent use. All calls, including timer
// fires delivered by its clock.Clock, must happen on one event loop.
package autoplay

import (
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/clock"
)

// Visibility reports whether the host surface is currently visible.
type Visibility interface {
	Visible() bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithObserver registers an observer for tick outcomes and timer lifecycle.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// WithVisibility sets the visibility source consulted on every tick.
func WithVisibility(v Visibility) Option {
	return func(s *Scheduler) { s.visibility = v }
}

// Scheduler owns the autoplay timer and the suspend reason set.
type Scheduler struct {
	cfg        Config
	clock      clock.Clock
	adapter    Adapter
	visibility Visibility
	observer   Observer
	log        zerolog.Logger

	reasons ReasonSet
	timer   clock.Timer
	closed  bool
}

// NewScheduler builds a scheduler. The adapter may be attached later; until
// then Start is a no-op.
func NewScheduler(cfg Config, clk clock.Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:   cfg,
		clock: clk,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the immutable configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// Attach sets the adapter and attempts to start.
func (s *Scheduler) Attach(a Adapter) {
	s.adapter = a
	s.Start()
}

// Detach stops the timer and forgets the adapter.
func (s *Scheduler) Detach() {
	s.Stop()
	s.adapter = nil
}

// SetVisibility replaces the visibility source.
func (s *Scheduler) SetVisibility(v Visibility) { s.visibility = v }

// Start creates the recurring timer. It is a no-op when autoplay is disabled,
// the adapter is missing or not ready, there is at most one item, a timer
// already exists, or the scheduler was closed.
func (s *Scheduler) Start() {
	if s.closed || s.timer != nil || !s.runnable() {
		return
	}
	interval := s.cfg.Interval()
	s.timer = s.clock.Every(interval, s.tick)
	s.log.Debug().Dur("interval", interval).Msg("autoplay: timer started")
	if s.observer != nil {
		s.observer.TimerStarted()
	}
}

// Stop cancels the timer if one exists.
func (s *Scheduler) Stop() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
	s.log.Debug().Msg("autoplay: timer stopped")
	if s.observer != nil {
		s.observer.TimerStopped()
	}
}

// Close stops the timer for good. Later Start calls are no-ops.
func (s *Scheduler) Close() {
	s.Stop()
	s.closed = true
}

// Active reports whether a timer exists.
func (s *Scheduler) Active() bool { return s.timer != nil }

// Suspend adds r to the reason set.
func (s *Scheduler) Suspend(r SuspendReason) {
	if s.reasons.Add(r) {
		s.log.Debug().Stringer("reason", r).Stringer("reasons", s.reasons).Msg("autoplay: suspended")
	}
}

// Release removes r and, if no reason remains, attempts to start the timer
// because some reasons tear it down instead of merely gating ticks.
func (s *Scheduler) Release(r SuspendReason) {
	if s.reasons.Remove(r) {
		s.log.Debug().Stringer("reason", r).Stringer("reasons", s.reasons).Msg("autoplay: released")
	}
	if s.reasons.IsEmpty() {
		s.Start()
	}
}

// Interrupt records a user-initiated navigation: ManualInteraction is added
// and the timer is torn down. Only ResetInteraction clears it.
func (s *Scheduler) Interrupt() {
	s.Suspend(ManualInteraction)
	s.Stop()
}

// ResetInteraction clears ManualInteraction and resumes if nothing else
// holds autoplay.
func (s *Scheduler) ResetInteraction() {
	s.Release(ManualInteraction)
}

// Suspended reports whether any reason is present.
func (s *Scheduler) Suspended() bool { return !s.reasons.IsEmpty() }

// Has reports whether r is present.
func (s *Scheduler) Has(r SuspendReason) bool { return s.reasons.Has(r) }

// Reasons lists present reasons.
func (s *Scheduler) Reasons() []SuspendReason { return s.reasons.Reasons() }

// runnable covers the conditions that make a timer pointless: disabled
// autoplay, no live adapter, or nothing to rotate through.
func (s *Scheduler) runnable() bool {
	return s.cfg.Enabled && adapterLive(s.adapter) && s.adapter.ItemCount() > 1
}

// decide evaluates every gate for one tick. It runs entirely inside a single
// handler so no monitor mutation can interleave with it.
func (s *Scheduler) decide() Outcome {
	if !s.reasons.IsEmpty() {
		return OutcomeSuspended
	}
	if s.visibility != nil && !s.visibility.Visible() {
		return OutcomeHidden
	}
	if !s.runnable() {
		return OutcomeInactive
	}
	if s.adapter.CanAdvance() {
		return OutcomeAdvanced
	}
	return OutcomeWrapped
}

func (s *Scheduler) tick() {
	outcome := s.decide()
	switch outcome {
	case OutcomeAdvanced:
		s.adapter.Advance()
	case OutcomeWrapped:
		s.adapter.JumpTo(0)
	}
	s.log.Debug().Str("outcome", string(outcome)).Msg("autoplay: tick")
	if s.observer != nil {
		s.observer.TickObserved(outcome)
	}
}
