package render

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/tutorgrid/core/assign"
)

// LoadSeries returns, per tutor, the number of bookings and of idle slots.
func LoadSeries(grid *assign.Grid, tutors []string) (bookings, idle []int) {
	load := grid.Load()
	bookings = make([]int, len(tutors))
	idle = make([]int, len(tutors))
	for i, t := range tutors {
		bookings[i] = load[t]
		idle[i] = grid.IdleSlots(t)
	}
	return bookings, idle
}

// LoadChartHTML renders a stacked bar chart of bookings and idle slots per
// tutor as a standalone HTML page.
func LoadChartHTML(grid *assign.Grid, tutors []string, title string) (string, error) {
	bookings, idle := LoadSeries(grid, tutors)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tutor"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Slots"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(tutors).
		AddSeries("Bookings", barData(bookings), charts.WithBarChartOpts(opts.BarChart{Stack: "load"})).
		AddSeries("Idle slots", barData(idle), charts.WithBarChartOpts(opts.BarChart{Stack: "load"}))

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.String(), nil
}

func barData(values []int) []opts.BarData {
	out := make([]opts.BarData, len(values))
	for i, v := range values {
		out[i] = opts.BarData{Value: v}
	}
	return out
}
