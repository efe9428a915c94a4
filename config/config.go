package config

//go:generate go run ../tools/schema-generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is the per-project config file looked up in the working directory.
const FileName = ".dreamsearch.yml"

// Malformed line policies.
const (
	MalformedSkip = "skip"
	MalformedFail = "fail"
)

// SearchConfig defines defaults for the search command.
type SearchConfig struct {
	// OutDir is the directory holding dream_log.txt and intermediates/.
	// Default: "outputs/img-samples".
	OutDir string `yaml:"outdir,omitempty"`

	// Root is the project root a relative OutDir is resolved against.
	// Default: the current working directory.
	Root string `yaml:"root,omitempty"`

	// Malformed controls lines that do not look like dream log records.
	// "skip" (default): warn and continue.
	// "fail": abort the search.
	Malformed string `yaml:"malformed,omitempty"`

	// Highlight styles matched prompt text in plain output on colour terminals.
	Highlight bool `yaml:"highlight,omitempty"`
}

// LoggingConfig defines diagnostic output on stderr.
type LoggingConfig struct {
	// Level is a logrus level name. Default: "warn".
	Level string `yaml:"level,omitempty"`
}

// Config is the top-level configuration structure for dreamsearch.
type Config struct {
	Search  SearchConfig  `yaml:"search,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads the first config file found in the working directory or
// the user config directory. With no file present it returns Default().
func LoadDefault() (*Config, string, error) {
	for _, path := range searchPaths() {
		cfg, err := Load(path)
		if err == nil {
			return cfg, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
	}
	return Default(), "", nil
}

func searchPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dreamsearch", "config.yml"))
	}
	return paths
}

func (c *Config) applyDefaults() {
	if c.Search.OutDir == "" {
		c.Search.OutDir = "outputs/img-samples"
	}
	if c.Search.Root == "" {
		c.Search.Root = "."
	}
	if c.Search.Malformed == "" {
		c.Search.Malformed = MalformedSkip
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logrus.WarnLevel.String()
	}
}

func (c *Config) validate() error {
	switch c.Search.Malformed {
	case MalformedSkip, MalformedFail:
	default:
		return fmt.Errorf("config: search.malformed must be %q or %q, got %q",
			MalformedSkip, MalformedFail, c.Search.Malformed)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	return nil
}

// Strict reports whether malformed lines abort the search.
func (c *Config) Strict() bool {
	return c.Search.Malformed == MalformedFail
}
