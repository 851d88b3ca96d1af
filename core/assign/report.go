package assign

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Fulfilment compares requested and placed lessons for one student and subject.
type Fulfilment struct {
	Student  string `json:"student"`
	Subject  string `json:"subject"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// Missing returns the number of lessons that could not be placed.
func (f Fulfilment) Missing() int { return f.Required - f.Assigned }

// Ratio returns Assigned/Required, 1 when nothing was required.
func (f Fulfilment) Ratio() float64 {
	if f.Required <= 0 {
		return 1
	}
	return float64(f.Assigned) / float64(f.Required)
}

// Report lists one Fulfilment per demand entry in processing order.
type Report struct {
	Entries []Fulfilment `json:"entries"`
}

// Underfilled returns the entries with fewer placed than requested lessons.
func (r Report) Underfilled() []Fulfilment {
	var out []Fulfilment
	for _, e := range r.Entries {
		if e.Assigned < e.Required {
			out = append(out, e)
		}
	}
	return out
}

// Satisfied reports whether every demand entry was fully placed.
func (r Report) Satisfied() bool { return len(r.Underfilled()) == 0 }

// Totals returns the requested and placed lesson counts.
func (r Report) Totals() (required, assigned int) {
	for _, e := range r.Entries {
		required += e.Required
		assigned += e.Assigned
	}
	return required, assigned
}

// For returns the entry of student and subject.
func (r Report) For(student, subject string) (Fulfilment, bool) {
	for _, e := range r.Entries {
		if e.Student == student && e.Subject == subject {
			return e, true
		}
	}
	return Fulfilment{}, false
}

// Summary aggregates fill ratios across entries.
type Summary struct {
	Entries   int     `json:"entries"`
	MeanRatio float64 `json:"mean_ratio"`
	StdDev    float64 `json:"std_dev"`
	MinRatio  float64 `json:"min_ratio"`
}

// Summary computes fill ratio statistics. An empty report is fully satisfied.
func (r Report) Summary() Summary {
	if len(r.Entries) == 0 {
		return Summary{MeanRatio: 1, MinRatio: 1}
	}
	ratios := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		ratios[i] = e.Ratio()
	}
	mean, std := stat.MeanStdDev(ratios, nil)
	if len(ratios) < 2 {
		std = 0
	}
	return Summary{
		Entries:   len(ratios),
		MeanRatio: mean,
		StdDev:    std,
		MinRatio:  floats.Min(ratios),
	}
}
