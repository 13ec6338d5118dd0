package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type SubmitterConfig struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

type LookupConfig struct {
	Enabled   *bool  `yaml:"enabled,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	Tool      string `yaml:"tool,omitempty"`
	Email     string `yaml:"email,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
	Retries   *int   `yaml:"retries,omitempty"`
	CacheSize int    `yaml:"cache_size,omitempty"`
}

// ProjectConfig mirrors sraqs.yaml. Zero values mean "not set"; the CLI
// applies flags and environment on top.
type ProjectConfig struct {
	Submitter       SubmitterConfig   `yaml:"submitter"`
	HoldDate        string            `yaml:"hold_date,omitempty"`
	LibraryLength   int               `yaml:"library_length,omitempty"`
	ReadLength      int               `yaml:"read_length,omitempty"`
	Delimiter       string            `yaml:"delimiter,omitempty"`
	Merge           []string          `yaml:"merge,omitempty"`
	Fields          map[string]string `yaml:"fields,omitempty"`
	InstrumentModel string            `yaml:"instrument_model,omitempty"`
	Lookup          LookupConfig      `yaml:"lookup"`
}

const ConfigFileName = "sraqs.yaml"

// Load reads sraqs.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file at an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LookupTimeout parses lookup.timeout, returning fallback when unset.
func (c *ProjectConfig) LookupTimeout(fallback time.Duration) (time.Duration, error) {
	if c == nil || c.Lookup.Timeout == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(c.Lookup.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid lookup.timeout %q: %w", c.Lookup.Timeout, err)
	}
	return d, nil
}

// DelimiterRune returns the configured delimiter. "\t" and "tab" both mean tab.
func (c *ProjectConfig) DelimiterRune() (rune, error) {
	if c == nil || c.Delimiter == "" {
		return 0, nil
	}
	return ParseDelimiter(c.Delimiter)
}

// ParseDelimiter converts a user-supplied delimiter into a single rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab", "TAB", "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	return r[0], nil
}
