package config

import "time"

// Config is the top-level persona configuration, corresponding to .persona.yml.
type Config struct {
	// SiteRoot is the directory or http(s) base URL documents are read from.
	SiteRoot string `yaml:"site_root" koanf:"site_root"`
	// SiteConfig is the people/profiles document, relative to SiteRoot.
	SiteConfig      string            `yaml:"site_config" koanf:"site_config"`
	OutputDir       string            `yaml:"output_dir" koanf:"output_dir"`
	Port            int               `yaml:"port" koanf:"port"`
	Theme           ThemeConfig       `yaml:"theme" koanf:"theme"`
	Preferences     PreferencesConfig `yaml:"preferences" koanf:"preferences"`
	Assets          []string          `yaml:"assets" koanf:"assets"`
	Exclude         []string          `yaml:"exclude" koanf:"exclude"`
	Watch           WatchConfig       `yaml:"watch" koanf:"watch"`
	Pages           []PageConfig      `yaml:"pages" koanf:"pages"`
	AllowAllOrigins bool              `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ThemeConfig selects the theme controller variant.
type ThemeConfig struct {
	Variant    string `yaml:"variant" koanf:"variant"`
	StorageKey string `yaml:"storage_key" koanf:"storage_key"`
}

// PreferencesConfig selects where the server keeps theme preferences.
type PreferencesConfig struct {
	Backend string `yaml:"backend" koanf:"backend"`
	DBPath  string `yaml:"db_path" koanf:"db_path"`
}

// WatchConfig holds settings for --watch.
type WatchConfig struct {
	Debounce string `yaml:"debounce" koanf:"debounce"`
}

// GetDebounce returns the debounce delay, falling back to 300ms.
func (w WatchConfig) GetDebounce() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// PageConfig mounts one page archetype at a URL path.
type PageConfig struct {
	Path      string `yaml:"path" koanf:"path"`
	Archetype string `yaml:"archetype" koanf:"archetype"`
	// Data is the document for profile, business and landing pages.
	Data string `yaml:"data,omitempty" koanf:"data"`
}
