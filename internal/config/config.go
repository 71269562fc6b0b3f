package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the working directory by the CLI.
const ConfigFileName = "funcase.yaml"

// Passes toggles individual transformation passes. All passes default to
// enabled; disabling the adt pass while keeping match enabled is rejected,
// since match compilation needs the registry the adt pass populates.
type Passes struct {
	ADT   *bool `yaml:"adt,omitempty"`
	Match *bool `yaml:"match,omitempty"`
	TCO   *bool `yaml:"tco,omitempty"`
}

// Config is the funcase.yaml file.
type Config struct {
	Passes           Passes `yaml:"passes,omitempty"`
	WarningsAsErrors bool   `yaml:"warnings_as_errors,omitempty"`
	Color            string `yaml:"color,omitempty"` // auto | always | never
}

func Default() *Config {
	return &Config{Color: "auto"}
}

func enabled(b *bool) bool { return b == nil || *b }

func (c *Config) ADTEnabled() bool   { return enabled(c.Passes.ADT) }
func (c *Config) MatchEnabled() bool { return enabled(c.Passes.Match) }
func (c *Config) TCOEnabled() bool   { return enabled(c.Passes.TCO) }

// Load reads and validates a funcase.yaml. A missing file yields the
// default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if !c.ADTEnabled() && c.MatchEnabled() {
		return fmt.Errorf("passes: match requires adt (match compilation reads the variant registry)")
	}
	return nil
}
