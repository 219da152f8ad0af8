package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/progress"
	"github.com/ziadkadry99/persona/internal/site"
	"github.com/ziadkadry99/persona/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static HTML",
	Long: `Renders every configured page, and every enabled person and profile of
index pages, into a self-contained directory that works from any sub-path.
Pages whose documents fail to load are written as the failure view and
reported; the rest of the site is still exported.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	buildCmd.Flags().Bool("markdown", false, "also write an index.md next to every page")
	buildCmd.Flags().Bool("watch", false, "rebuild when site files change")
	buildCmd.Flags().Bool("serve", false, "start a local HTTP server after building")
	buildCmd.Flags().Int("port", 0, "port for the local server (defaults to the config port)")
	buildCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	markdown, _ := cmd.Flags().GetBool("markdown")
	watching, _ := cmd.Flags().GetBool("watch")
	serve, _ := cmd.Flags().GetBool("serve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := func(quiet bool) error {
		gen := site.NewGenerator(cfg, newLoader(cfg))
		gen.OutputDir = outputDir
		gen.Markdown = markdown
		gen.Reporter = progress.NewReporter(quiet)
		m, err := gen.Generate(ctx)
		if m != nil {
			fmt.Printf("Static site exported: %s (%d pages, %d assets)\n", outputDir, len(m.Pages), len(m.Assets))
		}
		return err
	}

	if err := build(false); err != nil {
		if !watching && !serve {
			return fmt.Errorf("building site: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if watching {
		if err := startRebuilds(ctx, cfg, outputDir, build); err != nil {
			return err
		}
	}

	if serve {
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Port
		}
		openBrowser, _ := cmd.Flags().GetBool("open")
		errc := make(chan error, 1)
		go func() { errc <- site.Serve(outputDir, port, openBrowser) }()
		select {
		case err := <-errc:
			return fmt.Errorf("serving site: %w", err)
		case <-ctx.Done():
			return nil
		}
	}

	if watching {
		<-ctx.Done()
	}
	return nil
}

// startRebuilds runs the watcher in the background, rebuilding once per
// debounced batch of changes.
func startRebuilds(ctx context.Context, cfg *config.Config, outputDir string, build func(quiet bool) error) error {
	if newLoader(cfg).Remote() {
		return errors.New("--watch needs a local site_root")
	}
	logger := newLogger()
	w, err := watch.New(watchConfig(cfg, outputDir), logger, func(paths []string) {
		logger.Info("Files changed, rebuilding", "files", paths)
		if err := build(true); err != nil {
			logger.Warn("Rebuild finished with errors", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error("Watcher stopped", "error", err)
		}
	}()
	fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl+C to stop.")
	return nil
}
