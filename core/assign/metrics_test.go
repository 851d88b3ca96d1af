package assign

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMustRegisterMetrics(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	runsTotal.Inc()
	lessonsTotal.WithLabelValues("assigned").Add(1)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, n := range []string{"assign_runs_total", "assign_lessons_total", "assign_run_duration_seconds", "assign_fill_ratio"} {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

func TestResetMetricsRegistersOnFreshRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	ResetMetrics(reg)
	t.Cleanup(func() { ResetMetrics(nil) })
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	MustRegisterMetrics(reg)
}
