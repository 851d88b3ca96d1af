package model

import "fmt"

// Tutor is a teacher able to host lessons in the subjects it is qualified for,
// during the slots it declared available. Tutors are read-only once loaded.
type Tutor struct {
	Name         string   `json:"name"`
	Availability []Slot   `json:"availability"`
	Subjects     []string `json:"subjects"`
}

// Teaches returns true if the tutor is qualified for subject.
func (t Tutor) Teaches(subject string) bool {
	for _, s := range t.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// AvailableAt returns true if the tutor declared the slot available.
func (t Tutor) AvailableAt(slot Slot) bool {
	return containsSlot(t.Availability, slot)
}

// Validate checks the tutor record.
func (t Tutor) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tutor: %w", ErrEmptyName)
	}
	for _, s := range t.Subjects {
		if s == "" {
			return fmt.Errorf("tutor %s: %w", t.Name, ErrEmptySubject)
		}
	}
	return nil
}

func containsSlot(list []Slot, slot Slot) bool {
	for _, s := range list {
		if s == slot {
			return true
		}
	}
	return false
}
