// Package clock abstracts the recurring-timer primitive used by the autoplay
// scheduler so that the same scheduling logic runs on a real event loop, inside
// a Bubble Tea program, or under a virtual clock in tests.
package clock

import "time"

// Timer is a handle to one recurring timer.
type Timer interface {
	// Stop cancels the timer. Safe to call more than once.
	Stop()
}

// Clock creates recurring timers. Implementations must invoke fn on the
// event loop that owns the caller, never concurrently with other handlers on
// that loop, and never after Stop has returned.
type Clock interface {
	Every(d time.Duration, fn func()) Timer
}
