package events

import "time"

// RunEvent is published once per completed assignment run.
type RunEvent struct {
	RunID     string
	Students  int
	Tutors    int
	Slots     int
	Requested int
	Assigned  int
	Duration  time.Duration
	Time      time.Time
}

// UnderfillEvent reports a demand entry the engine could not fully place.
type UnderfillEvent struct {
	RunID    string
	Student  string
	Subject  string
	Required int
	Assigned int
}

// PublishEvent reports the result of publishing a tutor roster.
type PublishEvent struct {
	RunID string
	Tutor string
	Err   error
}
