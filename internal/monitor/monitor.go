// Package monitor translates host signals (visibility, pointer, focus and
// user navigation) into suspend reasons on an autoplay scheduler.
//
// Monitors are per presenter instance and hold no global state. Like the
// scheduler they drive, they must only be used from one event loop.
package monitor

import "github.com/tinytelemetry/marquee/internal/autoplay"

// Suspender receives reason changes.
type Suspender interface {
	Suspend(r autoplay.SuspendReason)
	Release(r autoplay.SuspendReason)
}

// Interrupter also accepts a hard stop for user-initiated navigation.
type Interrupter interface {
	Suspender
	Interrupt()
}
