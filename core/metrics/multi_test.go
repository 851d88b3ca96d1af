package metrics

import "testing"

type recordSink struct {
	count int
}

func (r *recordSink) RecordRun(RunMetrics) error {
	r.count++
	return nil
}

func (r *recordSink) RecordFulfilment([]FulfilmentMetric) error {
	r.count++
	return nil
}

// TestMultiSink ensures records are forwarded to all sinks and optional
// recorders are skipped when a sink does not implement them.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2, NopSink{})
	if err := m.RecordRun(RunMetrics{RunID: "r"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordFulfilment(nil); err != nil {
		t.Fatalf("record fulfilment: %v", err)
	}
	if err := m.RecordTutorLoad(nil); err != nil {
		t.Fatalf("record load: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("records not forwarded: %d %d", s1.count, s2.count)
	}
}
