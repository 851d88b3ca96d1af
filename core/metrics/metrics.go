package metrics

import "time"

// RunMetrics summarises one assignment run.
type RunMetrics struct {
	RunID       string
	Time        time.Time
	Duration    time.Duration
	Students    int
	Tutors      int
	Slots       int
	Requested   int
	Assigned    int
	Underfilled int
	MeanFill    float64
}

// MetricsSink records assignment runs for observability purposes.
type MetricsSink interface {
	RecordRun(run RunMetrics) error
}

// FulfilmentMetric is the placed versus requested count for one demand entry.
type FulfilmentMetric struct {
	RunID    string
	Student  string
	Subject  string
	Required int
	Assigned int
	Time     time.Time
}

// FulfilmentRecorder is implemented by sinks able to record per-demand fulfilment.
type FulfilmentRecorder interface {
	RecordFulfilment(f []FulfilmentMetric) error
}

// TutorLoad is the number of bookings and idle slots of a tutor after a run.
type TutorLoad struct {
	RunID    string
	Tutor    string
	Bookings int
	Idle     int
	Time     time.Time
}

// TutorLoadRecorder is implemented by sinks able to record tutor load.
type TutorLoadRecorder interface {
	RecordTutorLoad(l []TutorLoad) error
}

// UnderfillEvent is one demand entry left short by a run.
type UnderfillEvent struct {
	RunID   string
	Student string
	Subject string
	Missing int
	Time    time.Time
}

// UnderfillRecorder records demand entries that were not fully placed.
type UnderfillRecorder interface {
	RecordUnderfill(ev UnderfillEvent) error
}

// PublishEvent records the outcome of a roster publication.
type PublishEvent struct {
	RunID string
	Tutor string
	OK    bool
	Time  time.Time
}

// PublishRecorder records roster publications.
type PublishRecorder interface {
	RecordPublish(ev PublishEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunMetrics) error                { return nil }
func (NopSink) RecordFulfilment([]FulfilmentMetric) error { return nil }
func (NopSink) RecordTutorLoad([]TutorLoad) error         { return nil }
func (NopSink) RecordUnderfill(UnderfillEvent) error      { return nil }
func (NopSink) RecordPublish(PublishEvent) error          { return nil }
