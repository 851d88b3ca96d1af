package runs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/assign/logging"
)

type memStore struct {
	recs []logging.RunRecord
	err  error
	last logging.RunQuery
}

func (m *memStore) Append(ctx context.Context, r logging.RunRecord) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(ctx context.Context, q logging.RunQuery) ([]logging.RunRecord, error) {
	m.last = q
	if m.err != nil {
		return nil, m.err
	}
	var res []logging.RunRecord
	for _, r := range m.recs {
		if q.Matches(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestLogHandler_AuthAndFilters(t *testing.T) {
	store := &memStore{}
	for _, tutor := range []string{"Ann", "Bob"} {
		if err := store.Append(context.Background(), logging.RunRecord{
			ID:        "run-" + tutor,
			Timestamp: time.Now(),
			Tutors:    []string{tutor},
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	h := NewLogHandler(store, "tok")

	req := httptest.NewRequest("GET", "/api/runs?tutor=Ann&limit=5&start=2024-01-01T00:00:00Z", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []logging.RunRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].ID != "run-Ann" {
		t.Fatalf("unexpected records %+v", out)
	}
	if store.last.Limit != 5 || store.last.Start.Year() != 2024 {
		t.Fatalf("query not parsed: %+v", store.last)
	}

	// unauthorized
	req = httptest.NewRequest("GET", "/api/runs", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestLogHandler_Errors(t *testing.T) {
	store := &memStore{}
	h := NewLogHandler(store, "")

	cases := []struct {
		method, url string
		code        int
	}{
		{"GET", "/api/runs?limit=abc", http.StatusBadRequest},
		{"GET", "/api/runs?end=yesterday", http.StatusBadRequest},
		{"POST", "/api/runs", http.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(c.method, c.url, nil))
		if rr.Code != c.code {
			t.Errorf("%s %s: expected %d got %d", c.method, c.url, c.code, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/runs", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "[]\n" {
		t.Fatalf("expected empty list, got %d %q", rr.Code, rr.Body.String())
	}

	store.err = errors.New("boom")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/runs", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}
}

type historyFunc func() []assign.RunSummary

func (f historyFunc) History() []assign.RunSummary { return f() }

func TestHistoryHandler(t *testing.T) {
	h := NewHistoryHandler(historyFunc(func() []assign.RunSummary {
		return []assign.RunSummary{{ID: "r1", Requested: 3, Assigned: 2, Underfilled: 1}}
	}), "tok")

	req := httptest.NewRequest("GET", "/api/runs/history", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []assign.RunSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].ID != "r1" {
		t.Fatalf("unexpected history %+v", out)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/runs/history", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}
