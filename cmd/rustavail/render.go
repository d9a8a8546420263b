package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustavail/rustavail/internal/availability"
	"github.com/rustavail/rustavail/internal/cache"
	"github.com/rustavail/rustavail/internal/config"
	"github.com/rustavail/rustavail/internal/download"
	"github.com/rustavail/rustavail/internal/export"
	"github.com/rustavail/rustavail/internal/log"
	"github.com/rustavail/rustavail/internal/render"
	"github.com/rustavail/rustavail/internal/tiers"
)

// datetimeFormat is the human-readable generation timestamp embedded in
// every rendered page.
const datetimeFormat = "02 Jan 2006, 15:04:05 UTC"

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render availability pages and the file tree",
		Long: `Render downloads the recent channel manifests and produces both outputs:

- one HTML page per target, rendered through the configured template to a
  path derived from the configured output pattern
- a static file tree with per-target, per-package availability artifacts
  plus a packages.json manifest

Examples:
  # Render using a configuration file
  rustavail render -c config.yaml

  # Same, with debug logging
  rustavail render -c config.yaml -v`,
		RunE: runRenderCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Path to the configuration file (required)")
	_ = cmd.MarkFlagRequired("config") //nolint:errcheck // Flag is defined above

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error in %s: %w", configPath, err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// The download phase is the only long-running part; let SIGINT and
	// SIGTERM cancel it cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runRender(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runRender performs one full run: download, assemble, render, export.
func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close cache", "error", err)
		}
	}()

	downloader := download.New(cfg.Channel,
		download.WithCache(store),
		download.WithLogger(logger),
	)

	lookup := cfg.DaysInPast + cfg.AdditionalLookupDays
	logger.Info("fetching manifests", "channel", cfg.Channel, "days", lookup)
	manifests, err := downloader.LastManifests(ctx, lookup)
	if err != nil {
		return fmt.Errorf("failed to fetch manifests for channel %s: %w", cfg.Channel, err)
	}
	if len(manifests) == 0 {
		return fmt.Errorf("no manifests found for channel %s", cfg.Channel)
	}

	// Report dates are the newest days_in_past manifest dates; older
	// manifests only feed last-available resolution.
	dates := make([]time.Time, 0, cfg.DaysInPast)
	for _, m := range manifests {
		if len(dates) == cfg.DaysInPast {
			break
		}
		dates = append(dates, m.Date)
	}

	data := availability.New()
	data.AddManifests(manifests...)
	logger.Info("dataset assembled",
		"targets", len(data.Targets()),
		"packages", len(data.Packages()),
		"dates", len(dates),
	)

	renderer, err := render.NewRenderer(cfg.HTML.TemplatePath, cfg.HTML.OutputPattern, logger)
	if err != nil {
		return err
	}
	renderCtx := render.Context{
		Tiers:    tiers.NewTable(cfg.HTML.Tiers, data.Targets()),
		Datetime: time.Now().UTC().Format(datetimeFormat),
	}
	if err := renderer.RenderAll(data, dates, renderCtx); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.FileTreeOutput, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cfg.FileTreeOutput, err)
	}
	if err := export.Tree(data, dates, cfg.FileTreeOutput, logger); err != nil {
		return err
	}

	logger.Info("run complete",
		"pages", len(data.Targets()),
		"tree", cfg.FileTreeOutput,
	)
	return nil
}

// openCache creates the cache backend selected by the configuration.
func openCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return cache.Noop{}, nil
	case config.CacheBackendSQLite:
		store, err := cache.OpenSQLite(cfg.CacheDir())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		return store, nil
	default:
		store, err := cache.NewFs(cfg.CacheDir())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		return store, nil
	}
}
