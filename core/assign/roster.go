package assign

// RosterEntry is one lesson in a tutor's roster.
type RosterEntry struct {
	Slot    string `json:"slot"`
	Day     string `json:"day,omitempty"`
	Period  string `json:"period"`
	Student string `json:"student"`
	Subject string `json:"subject"`
}

// Roster returns the lessons of tutor in slot registration order. It is
// empty for an idle or unknown tutor.
func (g *Grid) Roster(tutor string) []RosterEntry {
	out := []RosterEntry{}
	for _, s := range g.slots {
		for _, b := range g.rosters[s].bookings[tutor] {
			out = append(out, RosterEntry{
				Slot:    s.String(),
				Day:     s.Day,
				Period:  string(s.Period),
				Student: b.Student,
				Subject: b.Subject,
			})
		}
	}
	return out
}

// IdleSlots returns how many slots tutor is registered at without any booking.
func (g *Grid) IdleSlots(tutor string) int {
	n := 0
	for _, s := range g.slots {
		if b, ok := g.rosters[s].bookings[tutor]; ok && len(b) == 0 {
			n++
		}
	}
	return n
}
