package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/tutorgrid/core/model"
)

// demandEntry accepts the three textual forms of a demand entry.
type demandEntry model.Demand

func parseDemand(s string) (demandEntry, error) {
	s = strings.TrimSpace(s)
	subject, count, found := strings.Cut(s, ":")
	if !found {
		return demandEntry{Subject: s, Count: 1}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return demandEntry{}, fmt.Errorf("demand %q: invalid count: %w", s, err)
	}
	return demandEntry{Subject: strings.TrimSpace(subject), Count: n}, nil
}

type demandObject struct {
	Subject string `yaml:"subject" json:"subject"`
	Count   *int   `yaml:"count" json:"count"`
}

func (o demandObject) entry() demandEntry {
	d := demandEntry{Subject: strings.TrimSpace(o.Subject), Count: 1}
	if o.Count != nil {
		d.Count = *o.Count
	}
	return d
}

// UnmarshalYAML decodes a scalar or mapping demand entry.
func (d *demandEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := parseDemand(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*d = v
		return nil
	case yaml.MappingNode:
		var o demandObject
		if err := node.Decode(&o); err != nil {
			return err
		}
		*d = o.entry()
		return nil
	default:
		return fmt.Errorf("line %d: demand entry must be a string or a mapping", node.Line)
	}
}

// UnmarshalJSON decodes a string or object demand entry.
func (d *demandEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := parseDemand(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
	var o demandObject
	if err := json.Unmarshal(b, &o); err != nil {
		return fmt.Errorf("demand entry must be a string or an object: %w", err)
	}
	*d = o.entry()
	return nil
}
