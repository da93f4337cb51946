package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/history"
	"github.com/jmylchreest/clrsync/internal/notify"
	"github.com/jmylchreest/clrsync/internal/palette"
	"github.com/jmylchreest/clrsync/internal/theme"
)

// applyOpts holds options for the apply command.
var applyOpts struct {
	path   string
	notify bool
}

var applyCmd = &cobra.Command{
	Use:   "apply [NAME]",
	Short: "Apply a palette to every enabled template",
	Long: `Apply a palette to every enabled template.

With no NAME the configured default theme is applied. --path applies a
palette file that is not in the palettes directory.

Templates are processed in name order and the first failure stops the
run. Outputs written before the failure are left in place. A failing
reload command is reported as a warning.

Examples:
  # Apply the default theme
  clrsync apply

  # Apply a named palette and send a desktop notification
  clrsync apply nord --notify

  # Apply a palette file
  clrsync apply --path ~/Downloads/dracula.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyOpts.path, "path", "p", "",
		"Palette file to apply")
	applyCmd.Flags().BoolVar(&applyOpts.notify, "notify", false,
		"Send a desktop notification with the result")
}

func runApply(cmd *cobra.Command, args []string) error {
	req := applyRequest{path: applyOpts.path, notify: applyOpts.notify}
	if len(args) > 0 {
		if req.path != "" {
			return errs.New(errs.InvalidArg, "Cannot combine a palette name with --path", args[0])
		}
		req.name = args[0]
	}
	return applyTheme(cmd.OutOrStdout(), req)
}

// applyRequest selects the palette to apply. An empty name and path means
// the default theme.
type applyRequest struct {
	name   string
	path   string
	notify bool
}

// loadCatalog builds the catalog from the configured palettes directory.
func loadCatalog() (*palette.Catalog, error) {
	catalog := palette.NewCatalog(logger)
	if err := catalog.LoadFromDirectory(cfgStore.PalettesPath()); err != nil {
		return nil, err
	}
	return catalog, nil
}

// runRequest resolves req and applies it with r.
func runRequest(r *theme.Renderer, req applyRequest) (*theme.Report, error) {
	if req.path != "" {
		return r.ApplyThemeFromPath(req.path)
	}

	name := req.name
	if name == "" {
		name = cfgStore.DefaultTheme()
		if name == "" {
			return &theme.Report{}, errs.New(errs.ConfigMissing, "No default theme configured", cfgStore.Path())
		}
	}
	return r.ApplyTheme(name)
}

// applyTheme applies req, records the run and prints a summary to w.
func applyTheme(w io.Writer, req applyRequest) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	renderer := theme.NewRenderer(catalog, cfgStore, theme.WithLogger(logger))
	report, applyErr := runRequest(renderer, req)

	recordRun(req, report, applyErr)
	if req.notify {
		sendNotification(report, req, applyErr)
	}

	if applyErr == nil {
		fmt.Fprintf(w, "Applied theme %s\n", report.Palette)
	}
	if report != nil {
		printReport(w, report)
	}
	return applyErr
}

// paletteLabel names the palette of a run for history and notifications.
func paletteLabel(report *theme.Report, req applyRequest) string {
	switch {
	case report != nil && report.Palette != "":
		return report.Palette
	case req.name != "":
		return req.name
	case req.path != "":
		return req.path
	default:
		return cfgStore.DefaultTheme()
	}
}

// recordRun appends the run to the history log. Failures are logged only.
func recordRun(req applyRequest, report *theme.Report, applyErr error) {
	source := history.SourceCatalog
	if req.path != "" {
		source = history.SourcePath
	}

	rec, err := history.NewRecord(paletteLabel(report, req), source)
	if err != nil {
		logger.Warn("failed to create history record", "error", err)
		return
	}
	rec.Path = req.path
	if report != nil {
		for _, a := range report.Applied {
			rec.Templates = append(rec.Templates, a.Name)
		}
		rec.Warnings = len(report.Warnings)
	}
	if applyErr != nil {
		rec.Error = applyErr.Error()
	}

	log, err := history.Open(config.HistoryPath())
	if err != nil {
		logger.Warn("failed to open history", "error", err)
		return
	}
	defer log.Close()

	if err := log.Append(rec); err != nil {
		logger.Warn("failed to record apply", "error", err)
	}
}

// sendNotification reports the run on the desktop. Failures are logged only.
func sendNotification(report *theme.Report, req applyRequest, applyErr error) {
	var applied []string
	if report != nil {
		for _, a := range report.Applied {
			applied = append(applied, a.Name)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := notify.ApplyResult(paletteLabel(report, req), applied, applyErr)
	if _, err := notify.NewSessionSender(logger).Send(ctx, n); err != nil {
		logger.Warn("failed to send notification", "error", err)
	}
}

// printReport writes the templates written by a run and any warnings.
func printReport(w io.Writer, report *theme.Report) {
	for _, a := range report.Applied {
		fmt.Fprintf(w, "  %-16s -> %s (%s)\n", a.Name, a.OutputPath, humanize.Bytes(uint64(a.Bytes)))
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}
