package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/tutorgrid/core/metrics"
	"github.com/kilianp07/tutorgrid/infra/logger"
)

// InfluxSink writes run events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordRun writes the run summary as one point.
func (s *InfluxSink) RecordRun(run coremetrics.RunMetrics) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("assignment_run").
		AddTag("run_id", run.RunID).
		AddTag("component", "assign_manager").
		AddField("students", run.Students).
		AddField("tutors", run.Tutors).
		AddField("slots", run.Slots).
		AddField("requested", run.Requested).
		AddField("assigned", run.Assigned).
		AddField("underfilled", run.Underfilled).
		AddField("mean_fill", round3(run.MeanFill)).
		AddField("duration_ms", round3(run.Duration.Seconds()*1000)).
		SetTime(run.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordFulfilment writes one point per demand entry.
func (s *InfluxSink) RecordFulfilment(fs []coremetrics.FulfilmentMetric) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, f := range fs {
		p := write.NewPointWithMeasurement("demand_fulfilment").
			AddTag("run_id", f.RunID).
			AddTag("student", f.Student).
			AddTag("subject", f.Subject).
			AddField("required", f.Required).
			AddField("assigned", f.Assigned).
			SetTime(f.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordTutorLoad writes one point per tutor.
func (s *InfluxSink) RecordTutorLoad(loads []coremetrics.TutorLoad) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, l := range loads {
		p := write.NewPointWithMeasurement("tutor_load").
			AddTag("run_id", l.RunID).
			AddTag("tutor", l.Tutor).
			AddField("bookings", l.Bookings).
			AddField("idle_slots", l.Idle).
			SetTime(l.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
