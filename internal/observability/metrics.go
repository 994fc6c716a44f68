package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	probeCasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadctl",
			Subsystem: "probe",
			Name:      "casts_total",
			Help:      "Ray probe casts by direction and outcome.",
		},
		[]string{"direction", "outcome"},
	)
	mateAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadctl",
			Subsystem: "mate",
			Name:      "attempts_total",
			Help:      "Mate pair attempts by terminal status.",
		},
		[]string{"status"},
	)
	mateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cadctl",
			Subsystem: "mate",
			Name:      "attempt_duration_seconds",
			Help:      "Mate pair attempt duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	rectangleFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cadctl",
			Subsystem: "sketch",
			Name:      "rectangle_fallbacks_total",
			Help:      "Rectangles rebuilt as four lines after a silent kernel no-op.",
		},
	)
	helperPlanes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadctl",
			Subsystem: "refplane",
			Name:      "helper_planes_total",
			Help:      "Helper plane derivations by action and cylindrical branch.",
		},
		[]string{"action", "cylindrical"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(probeCasts, mateAttempts, mateDuration, rectangleFallbacks, helperPlanes)
	})
}

func RecordProbeCast(direction, outcome string) {
	RegisterMetrics()
	probeCasts.WithLabelValues(direction, outcome).Inc()
}

func RecordMateAttempt(status string, duration time.Duration) {
	RegisterMetrics()
	mateAttempts.WithLabelValues(status).Inc()
	mateDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func RecordRectangleFallback() {
	RegisterMetrics()
	rectangleFallbacks.Inc()
}

func RecordHelperPlane(action string, cylindrical bool) {
	RegisterMetrics()
	helperPlanes.WithLabelValues(action, strconv.FormatBool(cylindrical)).Inc()
}
