package model

import "fmt"

// Demand is the number of lessons a student needs in one subject.
type Demand struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// Student is a learner with ordered subject demand. Demand order drives the
// order in which the engine tries to place the student's lessons.
type Student struct {
	Name         string   `json:"name"`
	Availability []Slot   `json:"availability"`
	Demand       []Demand `json:"demand"`
}

// AvailableAt returns true if the student declared the slot available.
func (s Student) AvailableAt(slot Slot) bool {
	return containsSlot(s.Availability, slot)
}

// Required returns the requested lesson count for subject.
func (s Student) Required(subject string) int {
	for _, d := range s.Demand {
		if d.Subject == subject {
			return d.Count
		}
	}
	return 0
}

// Validate checks the student record. Each subject may appear once in the
// demand list.
func (s Student) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("student: %w", ErrEmptyName)
	}
	seen := make(map[string]bool, len(s.Demand))
	for _, d := range s.Demand {
		if d.Subject == "" {
			return fmt.Errorf("student %s: %w", s.Name, ErrEmptySubject)
		}
		if seen[d.Subject] {
			return fmt.Errorf("student %s subject %s: %w", s.Name, d.Subject, ErrDuplicateSubject)
		}
		seen[d.Subject] = true
		if d.Count < 0 {
			return fmt.Errorf("student %s subject %s: %w", s.Name, d.Subject, ErrNegativeCount)
		}
	}
	return nil
}
