package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/persona/internal/db"
	"github.com/ziadkadry99/persona/internal/livereload"
	"github.com/ziadkadry99/persona/internal/metrics"
	"github.com/ziadkadry99/persona/internal/prefs"
	"github.com/ziadkadry99/persona/internal/server"
	"github.com/ziadkadry99/persona/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site, rendering every page on request",
	Long: `Starts an HTTP server that renders each configured page on request from the
current documents, so edits show up on the next reload. With --watch, open
pages reload themselves when a file under the site root changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to the config port)")
	serveCmd.Flags().Bool("watch", false, "reload open pages when site files change")
	serveCmd.Flags().String("prefs", "", "theme preference backend: cookie or sqlite (defaults to the config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if backend, _ := cmd.Flags().GetString("prefs"); backend != "" {
		cfg.Preferences.Backend = backend
	}
	if allow, _ := cmd.Flags().GetBool("allow-all-origins"); allow {
		cfg.AllowAllOrigins = true
	}

	var database *db.DB
	if cfg.Preferences.Backend == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Preferences.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating database dir: %w", err)
		}
		database, err = db.Open(cfg.Preferences.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
	}
	backend, err := prefs.New(cfg.Preferences.Backend, cfg.StorageKey(), database)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *livereload.Hub
	if watching, _ := cmd.Flags().GetBool("watch"); watching {
		if newLoader(cfg).Remote() {
			return fmt.Errorf("--watch needs a local site_root, got %s", cfg.SiteRoot)
		}
		hub = livereload.NewHub()
		logger := newLogger()
		w, err := watch.New(watchConfig(cfg, cfg.OutputDir), logger, func(paths []string) {
			logger.Info("Files changed, reloading pages", "files", len(paths), "clients", hub.Clients())
			hub.Reload()
		})
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("Watcher stopped", "error", err)
			}
		}()
	}

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllOrigins,
		Site:     cfg,
	}, newLoader(cfg), backend, metrics.New(), hub)
	if err != nil {
		return err
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "persona %s serving %s on http://localhost:%d\n", Version, cfg.SiteRoot, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Theme: %s (key %q, %s backend)\n", cfg.Theme.Variant, cfg.StorageKey(), cfg.Preferences.Backend)
	for _, p := range cfg.EffectivePages() {
		fmt.Fprintf(os.Stderr, "  Page: %-12s %s\n", p.Path, p.Archetype)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
