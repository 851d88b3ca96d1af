package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/tutorgrid/core/events"
	coremetrics "github.com/kilianp07/tutorgrid/core/metrics"
	"github.com/kilianp07/tutorgrid/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards underfill and
// publish events to sinks supporting them. It stops when the context is
// canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				collect(ev, sink)
			}
		}
	}()
}

func collect(ev eventbus.Event, sink coremetrics.MetricsSink) {
	switch e := ev.(type) {
	case events.UnderfillEvent:
		if r, ok := sink.(coremetrics.UnderfillRecorder); ok {
			_ = r.RecordUnderfill(coremetrics.UnderfillEvent{
				RunID:   e.RunID,
				Student: e.Student,
				Subject: e.Subject,
				Missing: e.Required - e.Assigned,
				Time:    time.Now(),
			})
		}
	case events.PublishEvent:
		if r, ok := sink.(coremetrics.PublishRecorder); ok {
			_ = r.RecordPublish(coremetrics.PublishEvent{
				RunID: e.RunID,
				Tutor: e.Tutor,
				OK:    e.Err == nil,
				Time:  time.Now(),
			})
		}
	}
}
