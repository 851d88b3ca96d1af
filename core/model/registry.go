package model

import (
	"errors"
	"fmt"
)

// Registry holds the parties of one assignment run in loader order. The
// order of Tutors and Students is the matching priority: earlier entries win
// when they compete for the same capacity.
type Registry struct {
	Tutors   []Tutor   `json:"tutors"`
	Students []Student `json:"students"`
}

// Tutor returns the tutor with the given name.
func (r Registry) Tutor(name string) (Tutor, bool) {
	for _, t := range r.Tutors {
		if t.Name == name {
			return t, true
		}
	}
	return Tutor{}, false
}

// TutorNames returns tutor names in registry order.
func (r Registry) TutorNames() []string {
	out := make([]string, 0, len(r.Tutors))
	for _, t := range r.Tutors {
		out = append(out, t.Name)
	}
	return out
}

// Student returns the student with the given name.
func (r Registry) Student(name string) (Student, bool) {
	for _, s := range r.Students {
		if s.Name == name {
			return s, true
		}
	}
	return Student{}, false
}

// Validate checks every record against the data model invariants. Periods
// must belong to the vocabulary; when days is non-empty, days must belong to
// it as well. All violations are reported together.
func (r Registry) Validate(periods PeriodSet, days []string) error {
	var errs []error
	seen := make(map[string]bool, len(r.Tutors))
	for _, t := range r.Tutors {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
		if t.Name != "" && seen[t.Name] {
			errs = append(errs, fmt.Errorf("tutor %s: %w", t.Name, ErrDuplicateName))
		}
		seen[t.Name] = true
		errs = append(errs, checkSlots("tutor "+t.Name, t.Availability, periods, days)...)
	}
	seen = make(map[string]bool, len(r.Students))
	for _, s := range r.Students {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
		if s.Name != "" && seen[s.Name] {
			errs = append(errs, fmt.Errorf("student %s: %w", s.Name, ErrDuplicateName))
		}
		seen[s.Name] = true
		errs = append(errs, checkSlots("student "+s.Name, s.Availability, periods, days)...)
	}
	return errors.Join(errs...)
}

func checkSlots(owner string, slots []Slot, periods PeriodSet, days []string) []error {
	var errs []error
	for _, sl := range slots {
		if len(periods) > 0 && !periods.Contains(sl.Period) {
			errs = append(errs, fmt.Errorf("%s slot %s: %w", owner, sl, ErrUnknownPeriod))
		}
		if len(days) > 0 && !containsString(days, sl.Day) {
			errs = append(errs, fmt.Errorf("%s slot %s: %w", owner, sl, ErrUnknownDay))
		}
	}
	return errs
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
