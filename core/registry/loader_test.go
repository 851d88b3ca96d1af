package registry

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tutorgrid/core/model"
)

func expectedRegistry() model.Registry {
	monE := model.Slot{Day: "Mon", Period: "E"}
	tueS := model.Slot{Day: "Tue", Period: "S"}
	return model.Registry{
		Tutors: []model.Tutor{
			{Name: "Ann", Subjects: []string{"Math", "Science"}, Availability: []model.Slot{monE, tueS}},
			{Name: "Bob", Subjects: []string{"Art"}, Availability: []model.Slot{monE}},
		},
		Students: []model.Student{
			{Name: "Zoe", Availability: []model.Slot{monE, tueS}, Demand: []model.Demand{
				{Subject: "Math", Count: 1}, {Subject: "Science", Count: 2}, {Subject: "Art", Count: 1},
			}},
			{Name: "Max", Availability: []model.Slot{monE}, Demand: []model.Demand{{Subject: "Art", Count: 1}}},
		},
	}
}

func TestLoadYAMLAndJSON(t *testing.T) {
	for _, name := range []string{"parties.yaml", "parties.json"} {
		reg, err := Load(filepath.Join("testdata", name))
		require.NoError(t, err, name)
		assert.Equal(t, expectedRegistry(), reg, name)
		assert.NoError(t, reg.Validate(model.DefaultPeriods, nil), name)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := Load("parties.toml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		format string
		body   string
	}{
		"bad count yaml":   {FormatYAML, "students:\n  - name: Zoe\n    demand: [\"Math:x\"]\n"},
		"bad count json":   {FormatJSON, `{"students":[{"name":"Zoe","demand":["Math:two"]}]}`},
		"bad slot":         {FormatYAML, "tutors:\n  - name: Ann\n    availability: [\":E\"]\n"},
		"unknown field":    {FormatYAML, "teachers: []\n"},
		"sequence demand":  {FormatYAML, "students:\n  - name: Zoe\n    demand: [[Math]]\n"},
		"unknown format":   {"toml", ""},
		"json syntax":      {FormatJSON, `{"tutors": [`},
		"json number item": {FormatJSON, `{"students":[{"name":"Zoe","demand":[3]}]}`},
	}
	for name, tc := range cases {
		_, err := Decode(strings.NewReader(tc.body), tc.format)
		assert.Error(t, err, name)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	reg, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, reg.Tutors)
	assert.Empty(t, reg.Students)
}

func TestDecodeDemandDefaultsAndZero(t *testing.T) {
	body := "students:\n  - name: Zoe\n    availability: [M]\n    demand:\n      - {subject: Math}\n      - {subject: Art, count: 0}\n      - \" Latin : 3 \"\n"
	reg, err := Decode(strings.NewReader(body), FormatYAML)
	require.NoError(t, err)
	require.Len(t, reg.Students, 1)
	assert.Equal(t, []model.Demand{{Subject: "Math", Count: 1}, {Subject: "Art", Count: 0}, {Subject: "Latin", Count: 3}}, reg.Students[0].Demand)
	assert.Equal(t, []model.Slot{{Period: "M"}}, reg.Students[0].Availability)
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a/b.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	f, err = FormatOf("x.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
}
