package tutors

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kilianp07/tutorgrid/core/assign"
)

// LatestRun returns the most recent run, false when nothing ran yet.
type LatestRun interface {
	Latest() (assign.RunResult, bool)
}

type rosterResponse struct {
	RunID   string               `json:"run_id"`
	Tutor   string               `json:"tutor"`
	Idle    int                  `json:"idle_slots"`
	Entries []assign.RosterEntry `json:"entries"`
}

// NewRosterHandler exposes a tutor's roster from the latest run via
// GET /api/tutors/{name}/roster.
func NewRosterHandler(src LatestRun) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/api/tutors/")
		parts := strings.Split(path, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] != "roster" {
			http.NotFound(w, r)
			return
		}
		name := parts[0]
		run, ok := src.Latest()
		if !ok {
			http.Error(w, "no run yet", http.StatusNotFound)
			return
		}
		if !registered(run.Grid, name) {
			http.Error(w, "unknown tutor", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rosterResponse{
			RunID:   run.ID,
			Tutor:   name,
			Idle:    run.Grid.IdleSlots(name),
			Entries: run.Grid.Roster(name),
		})
	})
}

func registered(g *assign.Grid, tutor string) bool {
	for _, s := range g.Slots() {
		if g.Has(s, tutor) {
			return true
		}
	}
	return false
}
