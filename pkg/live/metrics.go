package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for the bridge.
type metrics struct {
	framesTotal    *prometheus.CounterVec
	frameErrors    *prometheus.CounterVec
	frameDuration  *prometheus.HistogramVec
	activeSessions prometheus.Gauge
}

// newMetrics registers the bridge metrics with the given registerer under
// the given namespace.
func newMetrics(namespace string, reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &metrics{
		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Total number of client frames processed",
		}, []string{"op", "status"}),

		frameErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_errors_total",
			Help:      "Total number of frame processing errors",
		}, []string{"op", "error_type"}),

		frameDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Frame processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of active WebSocket sessions",
		}),
	}
}
