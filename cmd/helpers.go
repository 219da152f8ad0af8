package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/loader"
	"github.com/ziadkadry99/persona/internal/watch"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `persona init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLoader reads documents from the configured site root.
func newLoader(cfg *config.Config) *loader.Loader {
	return loader.New(cfg.SiteRoot)
}

// newLogger returns a stderr logger; --verbose lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// watchConfig watches the whole site root minus the excludes and the
// export output directory.
func watchConfig(cfg *config.Config, outputDir string) watch.Config {
	exclude := append([]string{}, cfg.Exclude...)
	if outputDir != "" {
		exclude = append(exclude, outputDir+"/**")
	}
	return watch.Config{
		Root:     cfg.SiteRoot,
		Exclude:  exclude,
		Debounce: cfg.Watch.GetDebounce(),
	}
}
