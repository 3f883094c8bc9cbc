package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP holds request instruments for the API server.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	h := &HTTP{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marquee",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "marquee",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method", "status"},
		),
		inflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "marquee",
				Subsystem: "http",
				Name:      "inflight_requests",
				Help:      "In-flight HTTP requests",
			},
		),
	}
	reg.MustRegister(h.requests, h.duration, h.inflight)
	return h
}

// Middleware instruments every request. Paths are labelled by route pattern
// to keep cardinality bounded.
func (h *HTTP) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.inflight.Inc()
		defer h.inflight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		h.requests.WithLabelValues(path, c.Request.Method, status).Inc()
		h.duration.WithLabelValues(path, c.Request.Method, status).Observe(time.Since(start).Seconds())
	}
}
