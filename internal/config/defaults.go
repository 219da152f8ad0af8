package config

// DefaultExcludes are glob patterns the watcher and check command skip.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"public/**",
	"*.db",
	"*.db-*",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteRoot:   ".",
		SiteConfig: "data/site.json",
		OutputDir:  "public",
		Port:       8080,
		Theme: ThemeConfig{
			Variant: "two-state",
		},
		Preferences: PreferencesConfig{
			Backend: "cookie",
			DBPath:  ".persona/prefs.db",
		},
		Assets:  []string{"assets/**"},
		Exclude: DefaultExcludes,
		Watch:   WatchConfig{Debounce: "300ms"},
	}
}

// EffectivePages returns the configured pages, or a single index page at
// the root when none are configured.
func (c *Config) EffectivePages() []PageConfig {
	if len(c.Pages) > 0 {
		return c.Pages
	}
	return []PageConfig{{Path: "/", Archetype: "index"}}
}

// StorageKey returns the preference key, defaulting per variant.
func (c *Config) StorageKey() string {
	if c.Theme.StorageKey != "" {
		return c.Theme.StorageKey
	}
	if c.Theme.Variant == "three-state" {
		return "persona-theme"
	}
	return "theme"
}
