package config

import (
	"fmt"

	"github.com/kilianp07/tutorgrid/infra/objectstore"
	"github.com/kilianp07/tutorgrid/pkg/export"
)

// ExportConfig selects where finished schedules are written.
type ExportConfig struct {
	// Format is json or csv.
	Format string `json:"format"`
	// Path receives the encoded schedule when set.
	Path string `json:"path"`
	// S3 uploads the encoded schedule when a bucket is set.
	S3 objectstore.Config `json:"s3"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = export.FormatJSON
	}
}

// Validate checks the format and the bucket settings.
func (c ExportConfig) Validate() error {
	if c.Format != export.FormatJSON && c.Format != export.FormatCSV {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.S3.Enabled() && c.S3.Region == "" && c.S3.Endpoint == "" {
		return fmt.Errorf("s3: region or endpoint required")
	}
	return nil
}

// ServerConfig configures the HTTP server of the serve command.
type ServerConfig struct {
	Addr string `json:"addr"`
	// Token protects the run log API when set.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
