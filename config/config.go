package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/tutorgrid/auth"
	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/assign/logging"
	"github.com/kilianp07/tutorgrid/core/metrics"
	"github.com/kilianp07/tutorgrid/infra/monitoring"
	"github.com/kilianp07/tutorgrid/infra/mqtt"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. TG_ENGINE__MAX_CAPACITY.
const EnvPrefix = "TG_"

type Config struct {
	Engine   assign.Config     `json:"engine"`
	Registry RegistryConfig    `json:"registry"`
	RunLog   logging.Config    `json:"runlog"`
	Metrics  metrics.Config    `json:"metrics"`
	MQTT     mqtt.Config       `json:"mqtt"`
	Export   ExportConfig      `json:"export"`
	Server   ServerConfig      `json:"server"`
	Logging  LoggingConfig     `json:"logging"`
	Sentry   monitoring.Config `json:"sentry"`
}

// RegistryConfig locates the party document, a local file or a remote URL
// optionally protected by OAuth2 client credentials.
type RegistryConfig struct {
	Path string    `json:"path"`
	URL  string    `json:"url"`
	Auth auth.Conf `json:"auth"`
}

// Load reads path (yaml or json) and applies TG_ environment overrides. An
// empty path loads the environment and defaults only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section's zero values.
func (c *Config) SetDefaults() {
	c.Engine.SetDefaults()
	c.Export.SetDefaults()
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section and reports all failures.
func (c Config) Validate() error {
	var errs []error
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}
	if err := c.RunLog.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Export.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("export: %w", err))
	}
	if c.Registry.Path != "" && c.Registry.URL != "" {
		errs = append(errs, fmt.Errorf("registry: path and url are exclusive"))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}
