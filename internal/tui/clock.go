package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/marquee/internal/clock"
)

// autoplayFireMsg is delivered when a teaClock timer comes due.
type autoplayFireMsg struct{ id int }

// teaClock implements clock.Clock inside a Bubble Tea program. Timers are
// one-shot tea.Tick commands re-armed on every fire; a stopped timer's
// in-flight tick is dropped in Update and never re-armed, so its callback
// cannot run after Stop.
//
// Commands produced by Every and by fires accumulate until Drain is called
// at the end of Update.
type teaClock struct {
	nextID  int
	timers  map[int]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	clock  *teaClock
	id     int
	period time.Duration
	fn     func()
}

func newTeaClock() *teaClock {
	return &teaClock{timers: make(map[int]*teaTimer)}
}

func (c *teaClock) Every(d time.Duration, fn func()) clock.Timer {
	c.nextID++
	t := &teaTimer{clock: c, id: c.nextID, period: d, fn: fn}
	c.timers[t.id] = t
	c.arm(t)
	return t
}

func (t *teaTimer) Stop() {
	delete(t.clock.timers, t.id)
}

// Handle runs the timer behind msg. It reports false for stopped timers.
func (c *teaClock) Handle(msg autoplayFireMsg) bool {
	t, ok := c.timers[msg.id]
	if !ok {
		return false
	}
	c.arm(t)
	t.fn()
	return true
}

// Active returns the number of live timers.
func (c *teaClock) Active() int { return len(c.timers) }

// Drain returns the accumulated commands as one.
func (c *teaClock) Drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}

func (c *teaClock) arm(t *teaTimer) {
	id := t.id
	c.pending = append(c.pending, tea.Tick(t.period, func(time.Time) tea.Msg {
		return autoplayFireMsg{id: id}
	}))
}
