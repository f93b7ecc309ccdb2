package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/0x0all/brojko/pkg/langtag"
)

// Defaults applied by [LoadFromReader] before validation.
const (
	DefaultListenAddr        = ":8080"
	DefaultReadinessAttempts = 10
	DefaultReadinessInterval = "500ms"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in unset fields that have sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Readiness.Attempts == 0 {
		cfg.Readiness.Attempts = DefaultReadinessAttempts
	}
	if cfg.Readiness.Interval == "" {
		cfg.Readiness.Interval = DefaultReadinessInterval
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Platform.Provider == "" {
		errs = append(errs, errors.New("platform.provider is required"))
	} else if !cfg.Platform.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("platform.provider %q is invalid; valid values: piper, device, mock", cfg.Platform.Provider))
	}
	if cfg.Platform.Provider != ProviderMock && cfg.Platform.Provider.IsValid() && cfg.Platform.URL == "" {
		errs = append(errs, fmt.Errorf("platform.url is required for provider %q", cfg.Platform.Provider))
	}

	if cfg.Readiness.Attempts < 1 {
		errs = append(errs, fmt.Errorf("readiness.attempts %d is invalid; must be >= 1", cfg.Readiness.Attempts))
	}
	interval, err := time.ParseDuration(cfg.Readiness.Interval)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("readiness.interval %q is not a valid duration: %w", cfg.Readiness.Interval, err))
	case interval < 0:
		errs = append(errs, fmt.Errorf("readiness.interval %q must not be negative", cfg.Readiness.Interval))
	default:
		cfg.Readiness.interval = interval
	}

	if len(cfg.Languages) == 0 {
		errs = append(errs, errors.New("languages must list at least one application language"))
	}
	// Odd tags still resolve (the matcher is total), so they only warrant a warning.
	for _, tag := range cfg.Languages {
		if !langtag.WellFormed(tag) {
			slog.Warn("configured language is not a well-formed BCP-47 tag", "language", tag)
		}
	}

	return errors.Join(errs...)
}
