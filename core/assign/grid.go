package assign

import "github.com/kilianp07/tutorgrid/core/model"

// Booking is one student placed in a tutor's roster for one subject.
type Booking struct {
	Student string `json:"student"`
	Subject string `json:"subject"`
}

// Placement is a booking together with its coordinates in the grid.
type Placement struct {
	Slot    model.Slot
	Tutor   string
	Student string
	Subject string
}

type roster struct {
	tutors   []string
	bookings map[string][]Booking
}

// Grid is the schedule produced by an assignment run: slot -> tutor ->
// ordered bookings. Only the engine mutates a Grid; everything exported is a
// read-only view and returns copies.
type Grid struct {
	slots   []model.Slot
	rosters map[model.Slot]*roster
}

func newGrid() *Grid {
	return &Grid{rosters: make(map[model.Slot]*roster)}
}

// register ensures slot and tutor exist with an empty booking list.
func (g *Grid) register(slot model.Slot, tutor string) {
	r, ok := g.rosters[slot]
	if !ok {
		r = &roster{bookings: make(map[string][]Booking)}
		g.rosters[slot] = r
		g.slots = append(g.slots, slot)
	}
	if _, ok := r.bookings[tutor]; ok {
		return
	}
	r.tutors = append(r.tutors, tutor)
	r.bookings[tutor] = []Booking{}
}

func (g *Grid) book(slot model.Slot, tutor string, b Booking) {
	r := g.rosters[slot]
	r.bookings[tutor] = append(r.bookings[tutor], b)
}

// count returns the number of bookings for tutor at slot.
func (g *Grid) count(slot model.Slot, tutor string) int {
	r, ok := g.rosters[slot]
	if !ok {
		return 0
	}
	return len(r.bookings[tutor])
}

// Lookup returns the bookings of tutor at slot in insertion order. The result
// is empty when the tutor is idle or not registered at slot.
func (g *Grid) Lookup(slot model.Slot, tutor string) []Booking {
	r, ok := g.rosters[slot]
	if !ok {
		return nil
	}
	return append([]Booking(nil), r.bookings[tutor]...)
}

// Has reports whether tutor is registered at slot.
func (g *Grid) Has(slot model.Slot, tutor string) bool {
	r, ok := g.rosters[slot]
	if !ok {
		return false
	}
	_, ok = r.bookings[tutor]
	return ok
}

// Slots returns the populated slots in registration order.
func (g *Grid) Slots() []model.Slot {
	return append([]model.Slot(nil), g.slots...)
}

// Days returns the distinct days of the populated slots in first appearance
// order. Single-day grids yield one empty day.
func (g *Grid) Days() []string {
	var days []string
	seen := make(map[string]bool)
	for _, s := range g.slots {
		if !seen[s.Day] {
			seen[s.Day] = true
			days = append(days, s.Day)
		}
	}
	return days
}

// Tutors returns the tutors registered at slot in registration order.
func (g *Grid) Tutors(slot model.Slot) []string {
	r, ok := g.rosters[slot]
	if !ok {
		return nil
	}
	return append([]string(nil), r.tutors...)
}

// StudentAt returns the tutor and booking holding student at slot, if any.
func (g *Grid) StudentAt(student string, slot model.Slot) (string, Booking, bool) {
	r, ok := g.rosters[slot]
	if !ok {
		return "", Booking{}, false
	}
	for _, t := range r.tutors {
		for _, b := range r.bookings[t] {
			if b.Student == student {
				return t, b, true
			}
		}
	}
	return "", Booking{}, false
}

// Placements walks the grid in slot, tutor and booking order.
func (g *Grid) Placements() []Placement {
	var out []Placement
	for _, s := range g.slots {
		r := g.rosters[s]
		for _, t := range r.tutors {
			for _, b := range r.bookings[t] {
				out = append(out, Placement{Slot: s, Tutor: t, Student: b.Student, Subject: b.Subject})
			}
		}
	}
	return out
}

// Bookings returns the total number of bookings in the grid.
func (g *Grid) Bookings() int {
	n := 0
	for _, r := range g.rosters {
		for _, b := range r.bookings {
			n += len(b)
		}
	}
	return n
}

// Load returns, for each tutor, the number of bookings across all slots.
func (g *Grid) Load() map[string]int {
	load := make(map[string]int)
	for _, r := range g.rosters {
		for _, t := range r.tutors {
			load[t] += len(r.bookings[t])
		}
	}
	return load
}
