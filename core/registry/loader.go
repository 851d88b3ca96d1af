package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/tutorgrid/core/model"
)

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an unsupported file extension or format name.
var ErrUnknownFormat = errors.New("unknown registry format")

type tutorFile struct {
	Name         string   `yaml:"name" json:"name"`
	Subjects     []string `yaml:"subjects" json:"subjects"`
	Availability []string `yaml:"availability" json:"availability"`
}

type studentFile struct {
	Name         string        `yaml:"name" json:"name"`
	Availability []string      `yaml:"availability" json:"availability"`
	Demand       []demandEntry `yaml:"demand" json:"demand"`
}

type partiesFile struct {
	Tutors   []tutorFile   `yaml:"tutors" json:"tutors"`
	Students []studentFile `yaml:"students" json:"students"`
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads the party file at path.
func Load(path string) (model.Registry, error) {
	format, err := FormatOf(path)
	if err != nil {
		return model.Registry{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return model.Registry{}, fmt.Errorf("open registry: %w", err)
	}
	defer func() { _ = f.Close() }()
	reg, err := Decode(f, format)
	if err != nil {
		return model.Registry{}, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Decode reads a party file in the given format. Structural errors such as
// malformed slots or counts are reported; semantic checks are left to
// model.Registry.Validate.
func Decode(r io.Reader, format string) (model.Registry, error) {
	var pf partiesFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
			return model.Registry{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
			return model.Registry{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return model.Registry{}, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return pf.registry()
}

func (pf partiesFile) registry() (model.Registry, error) {
	reg := model.Registry{
		Tutors:   make([]model.Tutor, 0, len(pf.Tutors)),
		Students: make([]model.Student, 0, len(pf.Students)),
	}
	for i, t := range pf.Tutors {
		slots, err := parseSlots(t.Availability)
		if err != nil {
			return model.Registry{}, fmt.Errorf("tutor %d (%s): %w", i, t.Name, err)
		}
		reg.Tutors = append(reg.Tutors, model.Tutor{
			Name:         strings.TrimSpace(t.Name),
			Subjects:     trimAll(t.Subjects),
			Availability: slots,
		})
	}
	for i, s := range pf.Students {
		slots, err := parseSlots(s.Availability)
		if err != nil {
			return model.Registry{}, fmt.Errorf("student %d (%s): %w", i, s.Name, err)
		}
		demand := make([]model.Demand, len(s.Demand))
		for j, d := range s.Demand {
			demand[j] = model.Demand(d)
		}
		reg.Students = append(reg.Students, model.Student{
			Name:         strings.TrimSpace(s.Name),
			Availability: slots,
			Demand:       demand,
		})
	}
	return reg, nil
}

func parseSlots(raw []string) ([]model.Slot, error) {
	out := make([]model.Slot, 0, len(raw))
	for _, r := range raw {
		s, err := model.ParseSlot(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
