// Package render draws an assignment grid as a terminal table.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/model"
)

const (
	// Idle marks a tutor registered at a slot without any booking.
	Idle = "---"
	// NoTeachers marks a slot where no tutor is registered.
	NoTeachers = "(no teachers)"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dayStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = cellStyle.Faint(true)
)

// Cell formats the rosters of every tutor registered at slot, one line per
// tutor in registration order.
func Cell(grid *assign.Grid, slot model.Slot) string {
	tutors := grid.Tutors(slot)
	if len(tutors) == 0 {
		return NoTeachers
	}
	lines := make([]string, 0, len(tutors))
	for _, t := range tutors {
		bookings := grid.Lookup(slot, t)
		if len(bookings) == 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", t, Idle))
			continue
		}
		parts := make([]string, 0, len(bookings))
		for _, b := range bookings {
			parts = append(parts, fmt.Sprintf("%s (%s)", b.Student, b.Subject))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", t, strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}

// Rows returns one row per day, the day label first and then one cell per
// period in vocabulary order. Days defaults to the days present in the grid.
func Rows(grid *assign.Grid, periods model.PeriodSet, days []string) [][]string {
	if len(days) == 0 {
		days = grid.Days()
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		row := make([]string, 0, len(periods)+1)
		row = append(row, d)
		for _, p := range periods {
			row = append(row, Cell(grid, model.Slot{Day: d, Period: p}))
		}
		rows = append(rows, row)
	}
	return rows
}

// Table renders the grid with a "Day" header followed by the period codes.
func Table(grid *assign.Grid, periods model.PeriodSet, days []string) string {
	headers := append([]string{"Day"}, periods.Strings()...)
	rows := Rows(grid, periods, days)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return dayStyle
			case row >= 0 && row < len(rows) && rows[row][col] == NoTeachers:
				return emptyStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}
