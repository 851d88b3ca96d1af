package assign

import (
	"fmt"

	"github.com/kilianp07/tutorgrid/core/model"
)

// DefaultMaxCapacity is the number of students a tutor may host in one slot
// when the configuration does not say otherwise.
const DefaultMaxCapacity = 2

// Config defines engine settings.
type Config struct {
	// Periods is the ordered period vocabulary.
	Periods []string `json:"periods"`
	// Days optionally restricts the day vocabulary. Empty means free-form days.
	Days []string `json:"days"`
	// MaxCapacity bounds the bookings per tutor and slot.
	MaxCapacity int `json:"max_capacity"`
}

// SetDefaults applies the default vocabulary and capacity.
func (c *Config) SetDefaults() {
	if len(c.Periods) == 0 {
		c.Periods = model.DefaultPeriods.Strings()
	}
	if c.MaxCapacity == 0 {
		c.MaxCapacity = DefaultMaxCapacity
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.MaxCapacity <= 0 {
		return fmt.Errorf("max_capacity must be positive, got %d", c.MaxCapacity)
	}
	if len(model.NewPeriodSet(c.Periods)) == 0 {
		return fmt.Errorf("at least one period is required")
	}
	return nil
}

// PeriodSet returns the configured vocabulary.
func (c Config) PeriodSet() model.PeriodSet {
	return model.NewPeriodSet(c.Periods)
}
