package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".persona.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PERSONA_*). A double underscore reaches
// nested keys: PERSONA_THEME__VARIANT sets theme.variant.
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

	if err := k.Load(env.Provider("PERSONA_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PERSONA_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
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
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validVariants = map[string]bool{
	"two-state":   true,
	"three-state": true,
}

var validBackends = map[string]bool{
	"cookie": true,
	"sqlite": true,
}

var validArchetypes = map[string]bool{
	"index":    true,
	"profile":  true,
	"business": true,
	"landing":  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteRoot == "" {
		return fmt.Errorf("site_root is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Theme.Variant != "" && !validVariants[c.Theme.Variant] {
		return fmt.Errorf("invalid theme.variant %q: must be one of two-state, three-state", c.Theme.Variant)
	}
	if !validBackends[c.Preferences.Backend] {
		return fmt.Errorf("invalid preferences.backend %q: must be one of cookie, sqlite", c.Preferences.Backend)
	}
	if c.Preferences.Backend == "sqlite" && c.Preferences.DBPath == "" {
		return fmt.Errorf("preferences.db_path is required for the sqlite backend")
	}

	seen := make(map[string]bool)
	for i, p := range c.EffectivePages() {
		if !strings.HasPrefix(p.Path, "/") {
			return fmt.Errorf("pages[%d]: path %q must start with /", i, p.Path)
		}
		mount := strings.Trim(p.Path, "/")
		if seen[mount] {
			return fmt.Errorf("pages[%d]: duplicate path %q", i, p.Path)
		}
		seen[mount] = true
		if !validArchetypes[p.Archetype] {
			return fmt.Errorf("pages[%d]: invalid archetype %q: must be one of index, profile, business, landing", i, p.Archetype)
		}
		if p.Archetype == "index" {
			if c.SiteConfig == "" {
				return fmt.Errorf("pages[%d]: index pages need site_config", i)
			}
		} else if p.Data == "" {
			return fmt.Errorf("pages[%d]: %s pages need data", i, p.Archetype)
		}
	}
	return nil
}
