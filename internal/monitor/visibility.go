package monitor

import (
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
)

// VisibilitySource is the host's visibility signal.
type VisibilitySource interface {
	Visible() bool
	Subscribe(fn func(visible bool)) (cancel func())
}

// VisibilityMonitor maps hidden to TabHidden and visible to its release.
type VisibilityMonitor struct {
	source VisibilitySource
	target Suspender
	log    zerolog.Logger

	cancel  func()
	stopped bool
}

// NewVisibilityMonitor creates a monitor. It does nothing until Start.
func NewVisibilityMonitor(source VisibilitySource, target Suspender, log zerolog.Logger) *VisibilityMonitor {
	return &VisibilityMonitor{source: source, target: target, log: log}
}

// Start subscribes to the source and applies its current state. Calling it
// again while subscribed is a no-op.
func (m *VisibilityMonitor) Start() {
	if m.cancel != nil || m.stopped || m.source == nil {
		return
	}
	m.cancel = m.source.Subscribe(m.apply)
	m.apply(m.source.Visible())
}

// Visible reports the source's current state. A monitor without a source is
// always visible.
func (m *VisibilityMonitor) Visible() bool {
	if m.source == nil {
		return true
	}
	return m.source.Visible()
}

// Stop unsubscribes. Safe to call more than once.
func (m *VisibilityMonitor) Stop() {
	m.stopped = true
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
}

func (m *VisibilityMonitor) apply(visible bool) {
	if m.stopped {
		return
	}
	m.log.Debug().Bool("visible", visible).Msg("monitor: visibility changed")
	if visible {
		m.target.Release(autoplay.TabHidden)
		return
	}
	m.target.Suspend(autoplay.TabHidden)
}

// VisibilitySwitch is a settable VisibilitySource for hosts that learn about
// visibility through messages (terminal focus reports, widget signals).
type VisibilitySwitch struct {
	visible bool
	nextID  int
	subs    map[int]func(bool)
}

// NewVisibilitySwitch returns a switch in the given state.
func NewVisibilitySwitch(visible bool) *VisibilitySwitch {
	return &VisibilitySwitch{visible: visible, subs: make(map[int]func(bool))}
}

// Visible reports the current state.
func (s *VisibilitySwitch) Visible() bool { return s.visible }

// Set changes the state and notifies subscribers when it actually changed.
func (s *VisibilitySwitch) Set(visible bool) {
	if s.visible == visible {
		return
	}
	s.visible = visible
	for _, fn := range s.subs {
		fn(visible)
	}
}

// Subscribe registers fn for state changes until cancel is called.
func (s *VisibilitySwitch) Subscribe(fn func(bool)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Subscribers returns the number of live subscriptions.
func (s *VisibilitySwitch) Subscribers() int { return len(s.subs) }
