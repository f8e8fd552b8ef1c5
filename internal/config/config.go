package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dlcheck/internal/classify"
	"dlcheck/internal/whitelist"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".dlcheck.yaml"

// ErrInvalidConfig is wrapped by every Validate problem.
var ErrInvalidConfig = errors.New("invalid config")

// Formats accepted by the check command.
var ValidFormats = []string{"text", "json", "facts"}

// Config holds all dlcheck configuration.
type Config struct {
	// Package patterns handed to the loader, e.g. "./...".
	Patterns []string `yaml:"patterns"`
	// Include _test.go files when loading.
	Tests bool `yaml:"tests"`

	// Qualified names (doublestar globs) of the opaque mutable-state container.
	StateTypes []string `yaml:"state_types,omitempty"`
	// Package paths (doublestar globs) of the trusted collection family.
	Collections []string `yaml:"collections,omitempty"`
	// Treat builtin slices and maps as trusted collections.
	BuiltinCollections bool `yaml:"builtin_collections"`

	// Extra type IDs accepted as opaque primitives.
	Whitelist []string `yaml:"whitelist,omitempty"`
	// Type ID globs skipped entirely.
	Ignore []string `yaml:"ignore,omitempty"`
	// Type ID globs accepted as externally trusted Data.
	Approved []string `yaml:"approved,omitempty"`

	EqualityMethods []string `yaml:"equality_methods"`
	HashMethods     []string `yaml:"hash_methods"`

	KeepGoing           bool   `yaml:"keep_going"`
	Format              string `yaml:"format"`
	DescriptorCacheSize int    `yaml:"descriptor_cache_size"`

	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Patterns:            []string{"./..."},
		StateTypes:          []string{"state.State", "**/state.State"},
		EqualityMethods:     append([]string(nil), classify.DefaultEqualityMethods...),
		HashMethods:         append([]string(nil), classify.DefaultHashMethods...),
		Format:              "text",
		DescriptorCacheSize: 4096,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the config at path over the defaults. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DLCHECK_PATTERNS"); v != "" {
		var patterns []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		c.Patterns = patterns
	}
	if v := os.Getenv("DLCHECK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DLCHECK_KEEP_GOING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.KeepGoing = b
		}
	}
	if v := os.Getenv("DLCHECK_FORMAT"); v != "" {
		c.Format = v
	}
}

// Validate reports every problem in the configuration. Each one wraps
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...interface{}) {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if len(c.Patterns) == 0 {
		invalid("no package patterns")
	}
	if !isValidFormat(c.Format) {
		invalid("unknown format %q (valid: %v)", c.Format, ValidFormats)
	}
	if c.DescriptorCacheSize <= 0 {
		invalid("descriptor_cache_size must be positive, got %d", c.DescriptorCacheSize)
	}

	globs := map[string][]string{
		"state_types": c.StateTypes,
		"collections": c.Collections,
		"ignore":      c.Ignore,
		"approved":    c.Approved,
	}
	for _, key := range []string{"state_types", "collections", "ignore", "approved"} {
		if perr := whitelist.ValidatePatterns(globs[key]...); perr != nil {
			invalid("%s: %v", key, perr)
		}
	}

	return err
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
