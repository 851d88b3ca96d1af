package tutors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/model"
)

type latest struct {
	run assign.RunResult
	ok  bool
}

func (l latest) Latest() (assign.RunResult, bool) { return l.run, l.ok }

func sampleRun(t *testing.T) assign.RunResult {
	t.Helper()
	mon := model.Slot{Day: "Mon", Period: "M"}
	a, err := assign.NewGreedyAssigner(assign.Config{})
	require.NoError(t, err)
	res := a.Assign(model.Registry{
		Tutors: []model.Tutor{
			{Name: "Ann", Subjects: []string{"Math"}, Availability: []model.Slot{mon}},
			{Name: "Bob", Subjects: []string{"Art"}, Availability: []model.Slot{mon}},
		},
		Students: []model.Student{
			{Name: "Zoe", Availability: []model.Slot{mon}, Demand: []model.Demand{{Subject: "Math", Count: 1}}},
		},
	})
	return assign.RunResult{ID: "run-1", Result: res}
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRosterHandler(t *testing.T) {
	h := NewRosterHandler(latest{run: sampleRun(t), ok: true})

	rr := get(h, "/api/tutors/Ann/roster")
	require.Equal(t, http.StatusOK, rr.Code)
	var out rosterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, 0, out.Idle)
	assert.Equal(t, []assign.RosterEntry{{Slot: "Mon:M", Day: "Mon", Period: "M", Student: "Zoe", Subject: "Math"}}, out.Entries)

	rr = get(h, "/api/tutors/Bob/roster")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Idle)
	assert.Empty(t, out.Entries)
}

func TestRosterHandlerNotFound(t *testing.T) {
	h := NewRosterHandler(latest{run: sampleRun(t), ok: true})
	assert.Equal(t, http.StatusNotFound, get(h, "/api/tutors/Eve/roster").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/api/tutors/Ann/kpis").Code)
	assert.Equal(t, http.StatusNotFound, get(NewRosterHandler(latest{}), "/api/tutors/Ann/roster").Code)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/tutors/Ann/roster", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
