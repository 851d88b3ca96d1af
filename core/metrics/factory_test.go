package metrics_test

import (
	"strings"
	"testing"

	"github.com/kilianp07/tutorgrid/core/factory"
	metrics "github.com/kilianp07/tutorgrid/core/metrics"
	inframetrics "github.com/kilianp07/tutorgrid/infra/metrics"
)

// unreachableInflux points at a closed port so the health check fails fast.
const unreachableInflux = "http://127.0.0.1:1"

/*
TestMetricsFactory_Builtins checks the sinks registered by infra/metrics.

	Cases:
	- prometheus builds a PromSink
	- influx falls back to NopSink when the server is unreachable
	- influx with a malformed conf fails to decode
	- unknown type lists the known sinks
*/
func TestMetricsFactory_Builtins(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "prometheus"}})
	if err != nil {
		t.Fatalf("create prometheus: %v", err)
	}
	if _, ok := s.(*inframetrics.PromSink); !ok {
		t.Fatalf("expected PromSink, got %T", s)
	}

	s, err = metrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "influx",
		Conf: map[string]any{"url": unreachableInflux, "token": "t", "org": "school", "bucket": "lessons"},
	}})
	if err != nil {
		t.Fatalf("create influx: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink fallback, got %T", s)
	}

	_, err = metrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "influx",
		Conf: map[string]any{"url": map[string]any{"host": "x"}},
	}})
	if err == nil {
		t.Fatal("expected decode error for malformed influx conf")
	}

	_, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "statsd"}})
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	for _, name := range []string{"influx", "nop", "prometheus"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not list %s", err, name)
		}
	}
}

/*
TestNewMetricsSink_Multi validates NewMetricsSink with zero and several configs.

	Cases:
	- no config -> NopSink
	- prometheus and influx -> MultiSink keeping config order
	- one failing config fails the whole set
*/
func TestNewMetricsSink_Multi(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create default: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}

	cfgs := []factory.ModuleConfig{
		{Type: "prometheus"},
		{Type: "influx", Conf: map[string]any{"url": unreachableInflux}},
	}
	s, err = metrics.NewMetricsSink(cfgs)
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
	}
	if _, ok := m.Sinks[0].(*inframetrics.PromSink); !ok {
		t.Fatalf("expected PromSink first, got %T", m.Sinks[0])
	}
	if err := s.RecordRun(metrics.RunMetrics{RunID: "r1", Requested: 3, Assigned: 2}); err != nil {
		t.Fatalf("record run: %v", err)
	}

	if _, err := metrics.NewMetricsSink(append(cfgs, factory.ModuleConfig{Type: "statsd"})); err == nil {
		t.Fatal("expected error when one sink is unknown")
	}
}
