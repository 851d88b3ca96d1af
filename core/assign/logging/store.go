package logging

import (
	"context"
	"fmt"
	"time"
)

// RunRecord captures one assignment run and the grid it produced.
type RunRecord struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Capacity   int                `json:"capacity"`
	Periods    []string           `json:"periods"`
	Tutors     []string           `json:"tutors"`
	Bookings   []BookingRecord    `json:"bookings"`
	Fulfilment []FulfilmentRecord `json:"fulfilment"`
}

// BookingRecord mirrors assign.Placement for logging purposes.
type BookingRecord struct {
	Day     string `json:"day,omitempty"`
	Period  string `json:"period"`
	Tutor   string `json:"tutor"`
	Student string `json:"student"`
	Subject string `json:"subject"`
}

// FulfilmentRecord mirrors assign.Fulfilment for logging purposes.
type FulfilmentRecord struct {
	Student  string `json:"student"`
	Subject  string `json:"subject"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// RunQuery defines filters for retrieving records. Limit keeps the most
// recent matching records.
type RunQuery struct {
	Start   time.Time
	End     time.Time
	Student string
	Tutor   string
	Limit   int
}

// Store persists RunRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q RunQuery) ([]RunRecord, error)
	Close() error
}

// Matches reports whether rec satisfies the time, student and tutor filters of q.
func (q RunQuery) Matches(rec RunRecord) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.Student != "" && !rec.involvesStudent(q.Student) {
		return false
	}
	if q.Tutor != "" && !rec.involvesTutor(q.Tutor) {
		return false
	}
	return true
}

func (q RunQuery) limit(recs []RunRecord) []RunRecord {
	if q.Limit > 0 && len(recs) > q.Limit {
		return recs[len(recs)-q.Limit:]
	}
	return recs
}

func (r RunRecord) involvesStudent(name string) bool {
	for _, f := range r.Fulfilment {
		if f.Student == name {
			return true
		}
	}
	for _, b := range r.Bookings {
		if b.Student == name {
			return true
		}
	}
	return false
}

func (r RunRecord) involvesTutor(name string) bool {
	for _, t := range r.Tutors {
		if t == name {
			return true
		}
	}
	for _, b := range r.Bookings {
		if b.Tutor == name {
			return true
		}
	}
	return false
}

// Config selects and configures a run log backend.
type Config struct {
	// Backend is one of jsonl, sqlite or postgres. Empty disables the run log.
	Backend string `json:"backend" yaml:"backend"`
	// Path is the JSONL file or SQLite database.
	Path string `json:"path" yaml:"path"`
	// DSN is the Postgres connection string.
	DSN string `json:"dsn" yaml:"dsn"`
	// MaxSizeMB enables rotation of the JSONL file when positive.
	MaxSizeMB  int `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`
}

// Validate checks that the selected backend has a location.
func (c Config) Validate() error {
	switch c.Backend {
	case "":
		return nil
	case "jsonl", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("runlog: path required for %s backend", c.Backend)
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("runlog: dsn required for postgres backend")
		}
	default:
		return fmt.Errorf("runlog: unknown backend %q", c.Backend)
	}
	return nil
}

// Open creates the store described by c. It returns nil when no backend is set.
func (c Config) Open() (Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Backend {
	case "":
		return nil, nil
	case "jsonl":
		if c.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
		}
		return NewJSONLStore(c.Path)
	case "postgres":
		return Open(c.Backend, c.DSN)
	default:
		return Open(c.Backend, c.Path)
	}
}

// Open creates a store for backend located at dsn, a file path for jsonl and
// sqlite or a connection string for postgres.
func Open(backend, dsn string) (Store, error) {
	switch backend {
	case "jsonl":
		return NewJSONLStore(dsn)
	case "sqlite":
		return NewSQLiteStore(dsn)
	case "postgres":
		return NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("runlog: unknown backend %q", backend)
	}
}
