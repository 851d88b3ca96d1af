package assign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/tutorgrid/core/assign/logging"
	"github.com/kilianp07/tutorgrid/core/events"
	"github.com/kilianp07/tutorgrid/core/logger"
	"github.com/kilianp07/tutorgrid/core/metrics"
	"github.com/kilianp07/tutorgrid/core/model"
	"github.com/kilianp07/tutorgrid/core/monitoring"
	"github.com/kilianp07/tutorgrid/core/mqtt"
	"github.com/kilianp07/tutorgrid/internal/eventbus"
)

// vocabulary is implemented by assigners that know their period and day sets.
type vocabulary interface {
	Periods() model.PeriodSet
	Days() []string
}

// RunResult is the outcome of a managed run.
type RunResult struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Result
}

// RunSummary is the history entry kept for each run.
type RunSummary struct {
	ID          string        `json:"id"`
	Started     time.Time     `json:"started"`
	Duration    time.Duration `json:"duration"`
	Requested   int           `json:"requested"`
	Assigned    int           `json:"assigned"`
	Underfilled int           `json:"underfilled"`
}

// Manager validates registries, runs the assigner and fans the outcome out
// to metrics, the run log, roster publishers and the event bus. Runs are
// serialised.
type Manager struct {
	assigner  Assigner
	logger    logger.Logger
	metrics   metrics.MetricsSink
	bus       eventbus.EventBus
	store     logging.Store
	publisher mqtt.Publisher

	runMu   sync.Mutex
	mu      sync.Mutex
	history []RunSummary
	latest  *RunResult
}

// NewManager creates a manager. sink and bus may be nil.
func NewManager(assigner Assigner, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Manager, error) {
	if assigner == nil || log == nil {
		return nil, fmt.Errorf("assign: nil parameter provided to NewManager")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{assigner: assigner, logger: log, metrics: sink, bus: bus}, nil
}

// SetRunStore configures the store used to persist run records.
func (m *Manager) SetRunStore(store logging.Store) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()
}

// SetPublisher configures the publisher receiving tutor rosters.
func (m *Manager) SetPublisher(p mqtt.Publisher) {
	m.mu.Lock()
	m.publisher = p
	m.mu.Unlock()
}

// History returns the summaries of past runs, oldest first.
func (m *Manager) History() []RunSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RunSummary(nil), m.history...)
}

// Latest returns the most recent successful run.
func (m *Manager) Latest() (RunResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		return RunResult{}, false
	}
	return *m.latest, true
}

// Close releases the run store and the bus.
func (m *Manager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store != nil {
		return store.Close()
	}
	return nil
}

func (m *Manager) vocabulary() (model.PeriodSet, []string) {
	if v, ok := m.assigner.(vocabulary); ok {
		return v.Periods(), v.Days()
	}
	return model.DefaultPeriods, nil
}

// Run validates reg and performs one assignment pass. An invalid registry
// yields an error and no run. Failures of collaborators are returned joined
// together with the produced result.
func (m *Manager) Run(ctx context.Context, reg model.Registry) (RunResult, error) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	periods, days := m.vocabulary()
	if err := reg.Validate(periods, days); err != nil {
		runFailures.Inc()
		return RunResult{}, fmt.Errorf("invalid registry: %w", err)
	}
	if err := ctx.Err(); err != nil {
		runFailures.Inc()
		return RunResult{}, err
	}

	run := RunResult{ID: uuid.NewString(), Started: time.Now()}
	run.Result = m.assigner.Assign(reg)
	run.Duration = time.Since(run.Started)

	required, assigned := run.Report.Totals()
	underfilled := run.Report.Underfilled()
	summary := run.Report.Summary()
	m.logger.Infow("assignment run completed", map[string]any{
		"run_id":      run.ID,
		"students":    len(reg.Students),
		"tutors":      len(reg.Tutors),
		"slots":       len(run.Grid.Slots()),
		"requested":   required,
		"assigned":    assigned,
		"underfilled": len(underfilled),
		"duration_ms": run.Duration.Milliseconds(),
	})
	for _, f := range underfilled {
		m.logger.Warnf("%s: %d of %d %s lessons placed", f.Student, f.Assigned, f.Required, f.Subject)
	}

	runsTotal.Inc()
	runDuration.Observe(run.Duration.Seconds())
	lessonsTotal.WithLabelValues("requested").Add(float64(required))
	lessonsTotal.WithLabelValues("assigned").Add(float64(assigned))
	fillRatio.Set(summary.MeanRatio)

	var errs []error
	for _, stage := range []struct {
		name string
		fn   func() error
	}{
		{"metrics", func() error { return m.recordMetrics(run, reg, summary.MeanRatio) }},
		{"run_log", func() error { return m.appendRecord(ctx, run, reg, periods) }},
		{"publish", func() error { return m.publishRosters(ctx, run, reg) }},
	} {
		if err := stage.fn(); err != nil {
			monitoring.CaptureException(err, map[string]string{"run_id": run.ID, "stage": stage.name})
			errs = append(errs, err)
		}
	}

	if m.bus != nil {
		m.bus.Publish(events.RunEvent{
			RunID:     run.ID,
			Students:  len(reg.Students),
			Tutors:    len(reg.Tutors),
			Slots:     len(run.Grid.Slots()),
			Requested: required,
			Assigned:  assigned,
			Duration:  run.Duration,
			Time:      run.Started,
		})
		for _, f := range underfilled {
			m.bus.Publish(events.UnderfillEvent{
				RunID:    run.ID,
				Student:  f.Student,
				Subject:  f.Subject,
				Required: f.Required,
				Assigned: f.Assigned,
			})
		}
	}

	m.mu.Lock()
	m.history = append(m.history, RunSummary{
		ID:          run.ID,
		Started:     run.Started,
		Duration:    run.Duration,
		Requested:   required,
		Assigned:    assigned,
		Underfilled: len(underfilled),
	})
	m.latest = &run
	m.mu.Unlock()
	return run, errors.Join(errs...)
}

// recordMetrics forwards the run to the sink and its optional recorders.
func (m *Manager) recordMetrics(run RunResult, reg model.Registry, meanFill float64) error {
	required, assigned := run.Report.Totals()
	var errs []error
	if err := m.metrics.RecordRun(metrics.RunMetrics{
		RunID:       run.ID,
		Time:        run.Started,
		Duration:    run.Duration,
		Students:    len(reg.Students),
		Tutors:      len(reg.Tutors),
		Slots:       len(run.Grid.Slots()),
		Requested:   required,
		Assigned:    assigned,
		Underfilled: len(run.Report.Underfilled()),
		MeanFill:    meanFill,
	}); err != nil {
		m.logger.Errorf("metrics error: %v", err)
		errs = append(errs, fmt.Errorf("record run: %w", err))
	}
	if fr, ok := m.metrics.(metrics.FulfilmentRecorder); ok {
		recs := make([]metrics.FulfilmentMetric, 0, len(run.Report.Entries))
		for _, e := range run.Report.Entries {
			recs = append(recs, metrics.FulfilmentMetric{
				RunID:    run.ID,
				Student:  e.Student,
				Subject:  e.Subject,
				Required: e.Required,
				Assigned: e.Assigned,
				Time:     run.Started,
			})
		}
		if err := fr.RecordFulfilment(recs); err != nil {
			m.logger.Errorf("fulfilment metrics error: %v", err)
			errs = append(errs, fmt.Errorf("record fulfilment: %w", err))
		}
	}
	if lr, ok := m.metrics.(metrics.TutorLoadRecorder); ok {
		load := run.Grid.Load()
		recs := make([]metrics.TutorLoad, 0, len(reg.Tutors))
		for _, t := range reg.Tutors {
			recs = append(recs, metrics.TutorLoad{
				RunID:    run.ID,
				Tutor:    t.Name,
				Bookings: load[t.Name],
				Idle:     run.Grid.IdleSlots(t.Name),
				Time:     run.Started,
			})
		}
		if err := lr.RecordTutorLoad(recs); err != nil {
			m.logger.Errorf("tutor load metrics error: %v", err)
			errs = append(errs, fmt.Errorf("record tutor load: %w", err))
		}
	}
	return errors.Join(errs...)
}

// appendRecord persists the run when a store is configured.
func (m *Manager) appendRecord(ctx context.Context, run RunResult, reg model.Registry, periods model.PeriodSet) error {
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store == nil {
		return nil
	}
	rec := logging.RunRecord{
		ID:        run.ID,
		Timestamp: run.Started,
		Capacity:  m.capacity(),
		Periods:   periods.Strings(),
	}
	for _, t := range reg.Tutors {
		rec.Tutors = append(rec.Tutors, t.Name)
	}
	for _, p := range run.Grid.Placements() {
		rec.Bookings = append(rec.Bookings, logging.BookingRecord{
			Day:     p.Slot.Day,
			Period:  string(p.Slot.Period),
			Tutor:   p.Tutor,
			Student: p.Student,
			Subject: p.Subject,
		})
	}
	for _, e := range run.Report.Entries {
		rec.Fulfilment = append(rec.Fulfilment, logging.FulfilmentRecord{
			Student:  e.Student,
			Subject:  e.Subject,
			Required: e.Required,
			Assigned: e.Assigned,
		})
	}
	if err := store.Append(ctx, rec); err != nil {
		m.logger.Errorf("run log append failed: %v", err)
		return fmt.Errorf("append run record: %w", err)
	}
	return nil
}

func (m *Manager) capacity() int {
	if c, ok := m.assigner.(interface{ Capacity() int }); ok {
		return c.Capacity()
	}
	return DefaultMaxCapacity
}

// publishRosters sends each registered tutor its roster, idle tutors included.
func (m *Manager) publishRosters(ctx context.Context, run RunResult, reg model.Registry) error {
	m.mu.Lock()
	pub := m.publisher
	m.mu.Unlock()
	if pub == nil {
		return nil
	}
	var errs []error
	for _, t := range reg.Tutors {
		if len(t.Availability) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		payload, err := json.Marshal(run.Grid.Roster(t.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("encode roster %s: %w", t.Name, err))
			continue
		}
		msgID, err := pub.PublishRoster(t.Name, payload)
		if err != nil {
			publishFailure.Inc()
			m.logger.Errorf("roster publish for %s failed: %v", t.Name, err)
			errs = append(errs, fmt.Errorf("publish roster %s: %w", t.Name, err))
		} else {
			publishSuccess.Inc()
			m.logger.Debugf("roster %s published for %s", msgID, t.Name)
		}
		if m.bus != nil {
			m.bus.Publish(events.PublishEvent{RunID: run.ID, Tutor: t.Name, Err: err})
		}
	}
	return errors.Join(errs...)
}
