package assign

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotal      prometheus.Counter
	runFailures    prometheus.Counter
	runDuration    prometheus.Histogram
	lessonsTotal   *prometheus.CounterVec
	fillRatio      prometheus.Gauge
	publishSuccess prometheus.Counter
	publishFailure prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, prometheus.Histogram, *prometheus.CounterVec, prometheus.Gauge, prometheus.Counter, prometheus.Counter) {
	runs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assign_runs_total",
			Help: "Number of completed assignment runs",
		},
	)
	failures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assign_run_failures_total",
			Help: "Number of runs rejected before assignment",
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assign_run_duration_seconds",
			Help:    "Duration of the assignment pass",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
	lessons := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assign_lessons_total",
			Help: "Lessons requested and placed across runs",
		},
		[]string{"kind"},
	)
	fill := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "assign_fill_ratio",
			Help: "Mean placed/requested ratio of the last run",
		},
	)
	suc := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roster_publish_success_total",
			Help: "Number of successful roster publications",
		},
	)
	fail := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roster_publish_failure_total",
			Help: "Number of failed roster publications",
		},
	)
	return runs, failures, dur, lessons, fill, suc, fail
}

func init() {
	runsTotal, runFailures, runDuration, lessonsTotal, fillRatio, publishSuccess, publishFailure = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers assignment metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(runsTotal, runFailures, runDuration, lessonsTotal, fillRatio, publishSuccess, publishFailure)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	runsTotal, runFailures, runDuration, lessonsTotal, fillRatio, publishSuccess, publishFailure = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
