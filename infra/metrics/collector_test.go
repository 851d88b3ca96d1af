package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kilianp07/tutorgrid/core/events"
	coremetrics "github.com/kilianp07/tutorgrid/core/metrics"
	"github.com/kilianp07/tutorgrid/internal/eventbus"
)

type recordingSink struct {
	mu        sync.Mutex
	underfill []coremetrics.UnderfillEvent
	publish   []coremetrics.PublishEvent
}

func (s *recordingSink) RecordRun(coremetrics.RunMetrics) error { return nil }

func (s *recordingSink) RecordUnderfill(ev coremetrics.UnderfillEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.underfill = append(s.underfill, ev)
	return nil
}

func (s *recordingSink) RecordPublish(ev coremetrics.PublishEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish = append(s.publish, ev)
	return nil
}

func (s *recordingSink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.underfill), len(s.publish)
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartEventCollector(ctx, bus, sink)
	// the collector subscribes synchronously, so events published now are seen
	bus.Publish(events.UnderfillEvent{RunID: "r1", Student: "Zoe", Subject: "Math", Required: 3, Assigned: 1})
	bus.Publish(events.PublishEvent{RunID: "r1", Tutor: "Ann", Err: errors.New("offline")})
	bus.Publish(events.RunEvent{RunID: "r1"})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if u, p := sink.counts(); u == 1 && p == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.underfill) != 1 || sink.underfill[0].Missing != 2 {
		t.Fatalf("unexpected underfill events: %+v", sink.underfill)
	}
	if len(sink.publish) != 1 || sink.publish[0].OK {
		t.Fatalf("unexpected publish events: %+v", sink.publish)
	}
}
