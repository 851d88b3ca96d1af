package metrics

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the run to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(run RunMetrics) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(run); err != nil {
			return err
		}
	}
	return nil
}

// RecordFulfilment forwards fulfilment records to sinks supporting them.
func (m *MultiSink) RecordFulfilment(f []FulfilmentMetric) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FulfilmentRecorder); ok {
			if err := rec.RecordFulfilment(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordTutorLoad forwards tutor load records.
func (m *MultiSink) RecordTutorLoad(l []TutorLoad) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TutorLoadRecorder); ok {
			if err := rec.RecordTutorLoad(l); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordUnderfill forwards underfill events.
func (m *MultiSink) RecordUnderfill(ev UnderfillEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(UnderfillRecorder); ok {
			if err := rec.RecordUnderfill(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPublish forwards publish events.
func (m *MultiSink) RecordPublish(ev PublishEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PublishRecorder); ok {
			if err := rec.RecordPublish(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
