package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/model"
)

// Supported export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Schedule is the JSON document of a run: days, then periods in vocabulary
// order, then tutors in registration order.
type Schedule struct {
	RunID      string              `json:"run_id,omitempty"`
	Days       []Day               `json:"days"`
	Fulfilment []assign.Fulfilment `json:"fulfilment"`
}

// Day groups the periods of one day.
type Day struct {
	Day     string   `json:"day"`
	Periods []Period `json:"periods"`
}

// Period lists the tutors registered at one slot. Tutors is empty when
// nobody is available.
type Period struct {
	Period string   `json:"period"`
	Tutors []Roster `json:"tutors"`
}

// Roster is the ordered bookings of one tutor at one slot.
type Roster struct {
	Tutor    string           `json:"tutor"`
	Bookings []assign.Booking `json:"bookings"`
}

func days(grid *assign.Grid, configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return grid.Days()
}

// NewSchedule builds the ordered view of res. Days defaults to the days
// present in the grid.
func NewSchedule(runID string, res assign.Result, periods model.PeriodSet, dayList []string) Schedule {
	s := Schedule{RunID: runID, Days: []Day{}, Fulfilment: res.Report.Entries}
	if s.Fulfilment == nil {
		s.Fulfilment = []assign.Fulfilment{}
	}
	for _, d := range days(res.Grid, dayList) {
		day := Day{Day: d, Periods: make([]Period, 0, len(periods))}
		for _, p := range periods {
			slot := model.Slot{Day: d, Period: p}
			per := Period{Period: string(p), Tutors: []Roster{}}
			for _, t := range res.Grid.Tutors(slot) {
				per.Tutors = append(per.Tutors, Roster{Tutor: t, Bookings: res.Grid.Lookup(slot, t)})
			}
			day.Periods = append(day.Periods, per)
		}
		s.Days = append(s.Days, day)
	}
	return s
}

// WriteJSON writes the schedule of res to w in JSON format.
func WriteJSON(w io.Writer, runID string, res assign.Result, periods model.PeriodSet, dayList []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSchedule(runID, res, periods, dayList))
}

// WriteCSV writes one row per booking, and one row with empty student and
// subject per idle tutor slot.
func WriteCSV(w io.Writer, grid *assign.Grid, periods model.PeriodSet, dayList []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "period", "tutor", "student", "subject"}); err != nil {
		return err
	}
	for _, d := range days(grid, dayList) {
		for _, p := range periods {
			slot := model.Slot{Day: d, Period: p}
			for _, t := range grid.Tutors(slot) {
				bookings := grid.Lookup(slot, t)
				if len(bookings) == 0 {
					if err := cw.Write([]string{d, string(p), t, "", ""}); err != nil {
						return err
					}
					continue
				}
				for _, b := range bookings {
					if err := cw.Write([]string{d, string(p), t, b.Student, b.Subject}); err != nil {
						return err
					}
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Encode renders res in format and returns the bytes together with the file
// extension and content type to store them under.
func Encode(format, runID string, res assign.Result, periods model.PeriodSet, dayList []string) ([]byte, string, string, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON, "":
		if err := WriteJSON(&buf, runID, res, periods, dayList); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), FormatJSON, "application/json", nil
	case FormatCSV:
		if err := WriteCSV(&buf, res.Grid, periods, dayList); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), FormatCSV, "text/csv", nil
	default:
		return nil, "", "", fmt.Errorf("unknown export format %q", format)
	}
}
