package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/model"
)

func sampleResult(t *testing.T) assign.Result {
	t.Helper()
	monM := model.Slot{Day: "Mon", Period: "M"}
	monA := model.Slot{Day: "Mon", Period: "A"}
	a, err := assign.NewGreedyAssigner(assign.Config{})
	require.NoError(t, err)
	return a.Assign(model.Registry{
		Tutors: []model.Tutor{
			{Name: "Ann", Subjects: []string{"Math"}, Availability: []model.Slot{monM, monA}},
			{Name: "Bob", Subjects: []string{"Art"}, Availability: []model.Slot{monM}},
		},
		Students: []model.Student{
			{Name: "Zoe", Availability: []model.Slot{monM}, Demand: []model.Demand{{Subject: "Math", Count: 1}}},
			{Name: "Max", Availability: []model.Slot{monM}, Demand: []model.Demand{{Subject: "Math", Count: 1}}},
		},
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult(t).Grid, model.DefaultPeriods, nil))
	want := strings.Join([]string{
		"day,period,tutor,student,subject",
		"Mon,M,Ann,Zoe,Math",
		"Mon,M,Ann,Max,Math",
		"Mon,M,Bob,,",
		"Mon,A,Ann,,",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "run-1", sampleResult(t), model.PeriodSet{"M", "L", "A"}, nil))

	var s Schedule
	require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
	assert.Equal(t, "run-1", s.RunID)
	require.Len(t, s.Days, 1)
	assert.Equal(t, "Mon", s.Days[0].Day)
	require.Len(t, s.Days[0].Periods, 3)

	m := s.Days[0].Periods[0]
	assert.Equal(t, "M", m.Period)
	require.Len(t, m.Tutors, 2)
	assert.Equal(t, []assign.Booking{{Student: "Zoe", Subject: "Math"}, {Student: "Max", Subject: "Math"}}, m.Tutors[0].Bookings)
	assert.Empty(t, m.Tutors[1].Bookings)
	assert.Empty(t, s.Days[0].Periods[1].Tutors)
	assert.Len(t, s.Fulfilment, 2)

	// periods keep vocabulary order in the encoded document
	raw := buf.String()
	assert.Less(t, strings.Index(raw, `"period": "L"`), strings.Index(raw, `"period": "A"`))
}

func TestEncode(t *testing.T) {
	res := sampleResult(t)
	b, ext, ct, err := Encode(FormatCSV, "r", res, model.DefaultPeriods, []string{"Mon", "Tue"})
	require.NoError(t, err)
	assert.Equal(t, "csv", ext)
	assert.Equal(t, "text/csv", ct)
	assert.True(t, bytes.HasPrefix(b, []byte("day,period")))

	_, ext, ct, err = Encode("", "r", res, model.DefaultPeriods, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", ext)
	assert.Equal(t, "application/json", ct)

	_, _, _, err = Encode("xml", "r", res, model.DefaultPeriods, nil)
	assert.Error(t, err)
}
