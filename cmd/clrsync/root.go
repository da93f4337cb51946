// Package main provides the CLI entrypoint for clrsync.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfgStore   *config.Store
	globalOpts struct {
		verbose    bool
		configPath string

		// Flag-only interface, used when no subcommand is given.
		apply      bool
		theme      string
		path       string
		listThemes bool
		showVars   bool
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "clrsync",
	Short: "Apply color palettes to application config templates",
	Long: `clrsync keeps application color schemes in sync.

Palettes are TOML files mapping color keys to colors. Templates are any
text files containing {key} or {key.field} placeholders. Applying a palette
renders every enabled template to its output path and runs its reload
command.

Running clrsync without flags or a subcommand prints this help.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return openConfig()
	},
	RunE: runRoot,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.configPath, "config", "c", "",
		"Path to config file (default: ~/.config/clrsync/config.toml)")

	rootCmd.Flags().BoolVarP(&globalOpts.apply, "apply", "a", false,
		"Apply the default theme (or the one given by --theme/--path)")
	rootCmd.Flags().StringVarP(&globalOpts.theme, "theme", "t", "",
		"Theme name to apply")
	rootCmd.Flags().StringVarP(&globalOpts.path, "path", "p", "",
		"Theme file to apply")
	rootCmd.Flags().BoolVarP(&globalOpts.listThemes, "list-themes", "l", false,
		"List available themes")
	rootCmd.Flags().BoolVarP(&globalOpts.showVars, "show-vars", "s", false,
		"Show color keys")
	rootCmd.MarkFlagsMutuallyExclusive("theme", "path")
}

// runRoot handles the flag-only interface.
func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case globalOpts.showVars:
		return printKeys(cmd.OutOrStdout(), "plain")
	case globalOpts.listThemes:
		return listPalettes(cmd.OutOrStdout(), "plain")
	case globalOpts.apply || globalOpts.theme != "" || globalOpts.path != "":
		return applyTheme(cmd.OutOrStdout(), applyRequest{
			name: globalOpts.theme,
			path: globalOpts.path,
		})
	default:
		return cmd.Help()
	}
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// configPath returns the config file in use.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.DefaultConfigPath()
}

// openConfig (re)opens the global config store.
func openConfig() error {
	s, err := config.Open(configPath(), config.Options{
		SystemDir: config.DataDir(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	cfgStore = s
	return nil
}
