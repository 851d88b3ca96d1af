package model

import "errors"

var (
	// ErrEmptyName is returned when a tutor or student has no name.
	ErrEmptyName = errors.New("name is required")
	// ErrDuplicateName is returned when two parties of the same kind share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrEmptySubject is returned for a blank subject in a demand or qualification list.
	ErrEmptySubject = errors.New("subject is required")
	// ErrDuplicateSubject is returned when a student lists the same subject twice in its demand.
	ErrDuplicateSubject = errors.New("duplicate demand subject")
	// ErrNegativeCount is returned for a demand entry requesting fewer than zero lessons.
	ErrNegativeCount = errors.New("lesson count must not be negative")
	// ErrUnknownPeriod is returned when an availability slot uses a period outside the vocabulary.
	ErrUnknownPeriod = errors.New("unknown period")
	// ErrUnknownDay is returned when an availability slot uses a day outside the configured days.
	ErrUnknownDay = errors.New("unknown day")
)
