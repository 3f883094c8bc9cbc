// Package metrics exposes Prometheus instruments for autoplay sessions and
// the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tinytelemetry/marquee/internal/autoplay"
)

// Autoplay implements autoplay.Observer on top of Prometheus instruments.
// A nil *Autoplay is a valid no-op observer.
type Autoplay struct {
	ticks  *prometheus.CounterVec
	active prometheus.Gauge
}

// NewAutoplay creates the instruments and registers them with reg.
func NewAutoplay(reg prometheus.Registerer) *Autoplay {
	a := &Autoplay{
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marquee",
				Subsystem: "autoplay",
				Name:      "ticks_total",
				Help:      "Autoplay timer fires by outcome",
			},
			[]string{"outcome"},
		),
		active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "marquee",
				Subsystem: "autoplay",
				Name:      "timers_active",
				Help:      "Autoplay timers currently scheduled",
			},
		),
	}
	reg.MustRegister(a.ticks, a.active)
	return a
}

func (a *Autoplay) TickObserved(outcome autoplay.Outcome) {
	if a == nil {
		return
	}
	a.ticks.WithLabelValues(string(outcome)).Inc()
}

func (a *Autoplay) TimerStarted() {
	if a == nil {
		return
	}
	a.active.Inc()
}

func (a *Autoplay) TimerStopped() {
	if a == nil {
		return
	}
	a.active.Dec()
}

var _ autoplay.Observer = (*Autoplay)(nil)
