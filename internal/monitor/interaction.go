package monitor

import (
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
)

// PointerDownSource emits raw user pointer-down events on the carousel.
type PointerDownSource interface {
	OnUserPointerDown(fn func()) (cancel func())
}

// InteractionMonitor handles hover, focus and user navigation for one
// presenter. Each behavior is switched on by its config flag.
type InteractionMonitor struct {
	cfg    autoplay.Config
	target Interrupter
	log    zerolog.Logger

	hovering bool
	focused  bool
	unbind   func()
	closed   bool
}

// NewInteractionMonitor creates a monitor that suspends target.
func NewInteractionMonitor(cfg autoplay.Config, target Interrupter, log zerolog.Logger) *InteractionMonitor {
	return &InteractionMonitor{cfg: cfg, target: target, log: log}
}

// Bind subscribes to src's pointer-down events when StopOnInteraction is set.
// A second Bind while bound is a no-op.
func (m *InteractionMonitor) Bind(src PointerDownSource) {
	if m.closed || m.unbind != nil || src == nil || !m.cfg.StopOnInteraction {
		return
	}
	m.unbind = src.OnUserPointerDown(m.UserNavigated)
}

// PointerEnter is called when the pointer enters the presenter bounds.
func (m *InteractionMonitor) PointerEnter() {
	if m.closed || !m.cfg.PauseOnHover || m.hovering {
		return
	}
	m.hovering = true
	m.target.Suspend(autoplay.Hover)
}

// PointerLeave is called when the pointer leaves the presenter bounds.
func (m *InteractionMonitor) PointerLeave() {
	if m.closed || !m.cfg.PauseOnHover || !m.hovering {
		return
	}
	m.hovering = false
	m.target.Release(autoplay.Hover)
}

// FocusIn is called when keyboard focus moves into the presenter.
func (m *InteractionMonitor) FocusIn() {
	if m.closed || !m.cfg.PauseOnFocus || m.focused {
		return
	}
	m.focused = true
	m.target.Suspend(autoplay.Focus)
}

// FocusOut is called when keyboard focus leaves the presenter.
func (m *InteractionMonitor) FocusOut() {
	if m.closed || !m.cfg.PauseOnFocus || !m.focused {
		return
	}
	m.focused = false
	m.target.Release(autoplay.Focus)
}

// UserNavigated records user-initiated navigation and hard-stops autoplay.
func (m *InteractionMonitor) UserNavigated() {
	if m.closed || !m.cfg.StopOnInteraction {
		return
	}
	m.log.Debug().Msg("monitor: user navigation, autoplay stopped")
	m.target.Interrupt()
}

// Hovering reports whether the pointer is over the presenter.
func (m *InteractionMonitor) Hovering() bool { return m.hovering }

// Focused reports whether keyboard focus is inside the presenter.
func (m *InteractionMonitor) Focused() bool { return m.focused }

// Close unbinds from the pointer source. Later events are ignored.
func (m *InteractionMonitor) Close() {
	m.closed = true
	if m.unbind != nil {
		m.unbind()
		m.unbind = nil
	}
}
