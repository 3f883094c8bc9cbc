package autoplay

import "time"

const (
	// DefaultDelayMs is the autoplay cadence when none is configured.
	DefaultDelayMs = 4000
	// MinDelayMs floors the cadence so configuration cannot produce a zero
	// length or unusably fast cycle.
	MinDelayMs = 1200
)

// Config is fixed for the lifetime of a scheduler.
type Config struct {
	Enabled           bool `mapstructure:"autoplay" json:"autoplay"`
	DelayMs           int  `mapstructure:"autoplay-delay-ms" json:"autoplay_delay_ms"`
	PauseOnHover      bool `mapstructure:"pause-on-hover" json:"pause_on_hover"`
	PauseOnFocus      bool `mapstructure:"pause-on-focus" json:"pause_on_focus"`
	StopOnInteraction bool `mapstructure:"stop-on-interaction" json:"stop_on_interaction"`
}

// DefaultConfig returns the recognized defaults: everything on, 4s cadence.
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		DelayMs:           DefaultDelayMs,
		PauseOnHover:      true,
		PauseOnFocus:      true,
		StopOnInteraction: true,
	}
}

// Interval returns the effective timer period. Zero, negative and too-small
// delays are coerced to MinDelayMs.
func (c Config) Interval() time.Duration {
	return time.Duration(max(c.DelayMs, MinDelayMs)) * time.Millisecond
}
