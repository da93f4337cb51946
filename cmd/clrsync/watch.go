package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/kvfile"
	"github.com/jmylchreest/clrsync/internal/theme"
)

// watchOpts holds options for the watch command.
var watchOpts struct {
	theme    string
	debounce time.Duration
	notify   bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-apply a theme when palettes or templates change",
	Long: `Watch the palettes directory, every enabled template source and the
config file, re-applying the theme after each burst of changes.

The theme is --theme, or the default theme read fresh from the config on
every change. Apply errors are logged and watching continues. Stop with
Ctrl+C or SIGTERM.

Examples:
  clrsync watch
  clrsync watch --theme nord --debounce 1s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.theme, "theme", "t", "",
		"Theme to apply (default: the configured default theme)")
	watchCmd.Flags().DurationVar(&watchOpts.debounce, "debounce", theme.DefaultDebounce,
		"Quiet period before re-applying")
	watchCmd.Flags().BoolVar(&watchOpts.notify, "notify", false,
		"Send a desktop notification after each apply")
}

func runWatch(cmd *cobra.Command, args []string) error {
	watcher, err := theme.NewWatcher(logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	watcher.SetDebounce(watchOpts.debounce)

	palettesDir := cfgStore.PalettesPath()
	templates, err := addWatchTargets(watcher, cfgStore)
	if err != nil {
		watcher.Close()
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s and %d template(s)\n", palettesDir, templates)

	return watcher.Run(ctx, func() {
		// The config may have changed; reopen it before applying.
		if err := openConfig(); err != nil {
			logger.Error("reload failed", "error", err)
			return
		}
		req := applyRequest{name: watchOpts.theme, notify: watchOpts.notify}
		if err := applyTheme(out, req); err != nil {
			logger.Error("apply failed", "error", err)
		}
	})
}

// addWatchTargets registers the palettes directory, the config files and
// every enabled template source with w. It returns the number of template
// sources being watched.
func addWatchTargets(w *theme.Watcher, store *config.Store) (int, error) {
	palettesDir := store.PalettesPath()
	if err := os.MkdirAll(palettesDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create palettes directory: %w", err)
	}
	if err := w.AddDir(palettesDir); err != nil {
		return 0, fmt.Errorf("failed to watch %s: %w", palettesDir, err)
	}

	configFiles := []string{store.Path()}
	if store.ShadowActive() {
		configFiles = append(configFiles, store.ShadowPath())
	}
	for _, path := range configFiles {
		if err := w.AddFile(path); err != nil {
			logger.Warn("not watching config file", "path", path, "error", err)
		}
	}

	templates := 0
	for _, b := range store.Templates() {
		if !b.Enabled || b.InputPath == "" {
			continue
		}
		if err := w.AddFile(kvfile.ExpandUser(b.InputPath)); err != nil {
			logger.Warn("not watching template", "name", b.Name, "path", b.InputPath, "error", err)
			continue
		}
		templates++
	}
	return templates, nil
}
