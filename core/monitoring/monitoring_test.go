package monitoring

import (
	"errors"
	"testing"
	"time"
)

type recorder struct {
	panics  []any
	errs    []error
	tags    []map[string]string
	flushed time.Duration
}

func (r *recorder) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}
func (r *recorder) Recover(v any)         { r.panics = append(r.panics, v) }
func (r *recorder) Flush(d time.Duration) { r.flushed = d }

func TestCaptureException(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	defer Init(nil)

	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"stage": "run_log"})
	Flush(time.Second)

	if len(rec.errs) != 1 || rec.tags[0]["stage"] != "run_log" {
		t.Fatalf("unexpected captures %v %v", rec.errs, rec.tags)
	}
	if rec.flushed != time.Second {
		t.Fatalf("flush not forwarded")
	}
}

func TestInitNilRestoresNop(t *testing.T) {
	Init(nil)
	if _, ok := get().(NopMonitor); !ok {
		t.Fatalf("expected NopMonitor, got %T", get())
	}
	CaptureException(errors.New("ignored"), nil)
	Recover()
}

func TestRecoverReportsAndRepanics(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	defer Init(nil)

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected re-panic, got %v", r)
		}
		if len(rec.panics) != 1 || rec.flushed != 2*time.Second {
			t.Fatalf("panic not reported: %+v", rec)
		}
	}()
	func() {
		defer Recover()
		panic("boom")
	}()
}
