package assign

import (
	"fmt"

	"github.com/kilianp07/tutorgrid/core/model"
)

// Assigner fills a schedule grid from a registry.
type Assigner interface {
	Assign(reg model.Registry) Result
}

// Result is the outcome of one assignment pass.
type Result struct {
	Grid   *Grid
	Report Report
}

// GreedyAssigner places students in registry order, subjects in demand order
// and slots in availability order, giving each lesson to the first tutor with
// remaining capacity. It never backtracks: a student that cannot be fully
// served simply ends up with fewer bookings, visible in the Report.
type GreedyAssigner struct {
	capacity int
	periods  model.PeriodSet
	days     []string
}

// NewGreedyAssigner returns an assigner using cfg. Zero values are replaced by
// defaults before validation.
func NewGreedyAssigner(cfg Config) (*GreedyAssigner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}
	return &GreedyAssigner{capacity: cfg.MaxCapacity, periods: cfg.PeriodSet(), days: append([]string(nil), cfg.Days...)}, nil
}

// Capacity returns the per tutor and slot booking limit.
func (a *GreedyAssigner) Capacity() int { return a.capacity }

// Periods returns the period vocabulary.
func (a *GreedyAssigner) Periods() model.PeriodSet { return a.periods }

// Days returns the day vocabulary, empty for free-form days.
func (a *GreedyAssigner) Days() []string { return append([]string(nil), a.days...) }

// Assign runs a single deterministic pass over reg.
func (a *GreedyAssigner) Assign(reg model.Registry) Result {
	grid := newGrid()
	for _, t := range reg.Tutors {
		for _, s := range t.Availability {
			grid.register(s, t.Name)
		}
	}

	var report Report
	for _, st := range reg.Students {
		consumed := make(map[model.Slot]bool, len(st.Availability))
		for _, d := range st.Demand {
			assigned := a.placeSubject(grid, reg.Tutors, st, d, consumed)
			report.Entries = append(report.Entries, Fulfilment{
				Student:  st.Name,
				Subject:  d.Subject,
				Required: d.Count,
				Assigned: assigned,
			})
		}
	}
	return Result{Grid: grid, Report: report}
}

func (a *GreedyAssigner) placeSubject(grid *Grid, tutors []model.Tutor, st model.Student, d model.Demand, consumed map[model.Slot]bool) int {
	assigned := 0
	for _, slot := range st.Availability {
		if assigned >= d.Count {
			break
		}
		if consumed[slot] {
			continue
		}
		tutor, ok := a.candidate(grid, tutors, d.Subject, slot)
		if !ok {
			continue
		}
		grid.book(slot, tutor, Booking{Student: st.Name, Subject: d.Subject})
		consumed[slot] = true
		assigned++
	}
	return assigned
}

// candidate returns the first tutor in registry order able to take subject at slot.
func (a *GreedyAssigner) candidate(grid *Grid, tutors []model.Tutor, subject string, slot model.Slot) (string, bool) {
	for _, t := range tutors {
		if !t.Teaches(subject) || !t.AvailableAt(slot) {
			continue
		}
		if grid.count(slot, t.Name) < a.capacity {
			return t.Name, true
		}
	}
	return "", false
}
