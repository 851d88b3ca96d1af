package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/tutorgrid/core/metrics"
)

// PromSink records assignment runs in Prometheus metrics.
type PromSink struct {
	runs      prometheus.Counter
	lessons   *prometheus.GaugeVec
	fill      prometheus.Gauge
	load      *prometheus.GaugeVec
	underfill *prometheus.CounterVec
	publish   *prometheus.CounterVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tutorgrid_runs_total",
			Help: "Total number of recorded assignment runs",
		}),
		lessons: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tutorgrid_last_run_lessons",
			Help: "Lessons requested and placed by the last run",
		}, []string{"kind"}),
		fill: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tutorgrid_last_run_mean_fill_ratio",
			Help: "Mean placed/requested ratio across demand entries of the last run",
		}),
		load: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tutorgrid_tutor_bookings",
			Help: "Bookings per tutor in the last run",
		}, []string{"tutor"}),
		underfill: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutorgrid_underfilled_lessons_total",
			Help: "Lessons that could not be placed",
		}, []string{"subject"}),
		publish: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutorgrid_roster_publish_total",
			Help: "Roster publications by outcome",
		}, []string{"ok"}),
	}
	var err error
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.lessons, err = register(reg, s.lessons); err != nil {
		return nil, err
	}
	if s.fill, err = register(reg, s.fill); err != nil {
		return nil, err
	}
	if s.load, err = register(reg, s.load); err != nil {
		return nil, err
	}
	if s.underfill, err = register(reg, s.underfill); err != nil {
		return nil, err
	}
	if s.publish, err = register(reg, s.publish); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun increments the run counter and updates last run gauges.
func (s *PromSink) RecordRun(run coremetrics.RunMetrics) error {
	s.runs.Inc()
	s.lessons.WithLabelValues("requested").Set(float64(run.Requested))
	s.lessons.WithLabelValues("assigned").Set(float64(run.Assigned))
	s.fill.Set(run.MeanFill)
	return nil
}

// RecordTutorLoad sets the bookings gauge of each tutor.
func (s *PromSink) RecordTutorLoad(loads []coremetrics.TutorLoad) error {
	for _, l := range loads {
		s.load.WithLabelValues(l.Tutor).Set(float64(l.Bookings))
	}
	return nil
}

// RecordUnderfill counts the missing lessons of the subject.
func (s *PromSink) RecordUnderfill(ev coremetrics.UnderfillEvent) error {
	s.underfill.WithLabelValues(ev.Subject).Add(float64(ev.Missing))
	return nil
}

// RecordPublish counts roster publications by outcome.
func (s *PromSink) RecordPublish(ev coremetrics.PublishEvent) error {
	s.publish.WithLabelValues(strconv.FormatBool(ev.OK)).Inc()
	return nil
}
