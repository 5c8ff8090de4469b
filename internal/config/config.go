package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/natefinch/atomic"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/landingkit/internal/page"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "LANDINGKIT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LANDINGKIT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: LANDINGKIT_OUTPUT_DIR -> output_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists from the file replace the defaults rather than merging into them.
	if k.Exists("assets") {
		cfg.Assets = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentFile == "" {
		return fmt.Errorf("content_file is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if strings.TrimSpace(c.Container) == "" {
		return fmt.Errorf("container is required")
	}
	if strings.TrimSpace(c.NavContainer) == "" {
		return fmt.Errorf("nav_container is required")
	}
	if c.ScrollOffset < 0 {
		return fmt.Errorf("scroll_offset must be non-negative")
	}
	if c.RevealThreshold <= 0 || c.RevealThreshold > 1 {
		return fmt.Errorf("invalid reveal_threshold %v: must be in (0, 1]", c.RevealThreshold)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// PageOptions converts the configuration into page mounting options.
func (c *Config) PageOptions() page.Options {
	return page.Options{
		Container:       c.Container,
		NavContainer:    c.NavContainer,
		ScrollOffset:    page.Offset(c.ScrollOffset),
		RevealThreshold: c.RevealThreshold,
	}
}
