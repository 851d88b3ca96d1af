package model

import (
	"fmt"
	"strings"
)

// Period is a symbolic period code such as "E". The set of valid codes is
// supplied by the engine configuration.
type Period string

// DefaultPeriods is the period vocabulary used when none is configured.
var DefaultPeriods = PeriodSet{"M", "L", "A", "E", "S"}

// PeriodSet is the ordered period vocabulary. Its order is the order used by
// renderers when walking a day.
type PeriodSet []Period

// NewPeriodSet builds a PeriodSet from raw codes, trimming whitespace and
// dropping empty or repeated entries.
func NewPeriodSet(codes []string) PeriodSet {
	set := make(PeriodSet, 0, len(codes))
	seen := make(map[Period]bool, len(codes))
	for _, c := range codes {
		p := Period(strings.TrimSpace(c))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		set = append(set, p)
	}
	return set
}

// Contains reports whether p belongs to the vocabulary.
func (s PeriodSet) Contains(p Period) bool {
	return s.Index(p) >= 0
}

// Index returns the position of p in the vocabulary or -1.
func (s PeriodSet) Index(p Period) int {
	for i, v := range s {
		if v == p {
			return i
		}
	}
	return -1
}

// Strings returns the codes as plain strings.
func (s PeriodSet) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}

// Slot is a (day, period) coordinate of the weekly grid. Day is empty for
// single-day grids.
type Slot struct {
	Day    string `json:"day,omitempty"`
	Period Period `json:"period"`
}

// String formats the slot as "Day:Period", or just "Period" when the slot has
// no day.
func (s Slot) String() string {
	if s.Day == "" {
		return string(s.Period)
	}
	return s.Day + ":" + string(s.Period)
}

// ParseSlot parses the textual form produced by Slot.String.
func ParseSlot(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Slot{}, fmt.Errorf("empty slot")
	}
	day, period, found := strings.Cut(s, ":")
	if !found {
		return Slot{Period: Period(s)}, nil
	}
	day = strings.TrimSpace(day)
	period = strings.TrimSpace(period)
	if day == "" || period == "" {
		return Slot{}, fmt.Errorf("invalid slot %q", s)
	}
	return Slot{Day: day, Period: Period(period)}, nil
}
