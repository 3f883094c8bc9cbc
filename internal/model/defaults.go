package model

import "time"

// Shared defaults used by both the server and TUI binaries.
const (
	// DefaultUpdateInterval is how often the TUI reloads testimonials.
	DefaultUpdateInterval = 30 * time.Second
)
