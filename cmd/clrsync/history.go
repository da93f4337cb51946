package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/history"
)

// historyOpts holds options for the history command.
var historyOpts struct {
	limit int
	json  bool
	clear bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent theme applies",
	Long: `Show recent theme applies, newest first.

Every apply from the CLI, the watcher or the picker is recorded in
$XDG_STATE_HOME/clrsync/history.jsonl.

Examples:
  clrsync history
  clrsync history -n 50 --json
  clrsync history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyOpts.limit, "limit", "n", 10,
		"Number of runs to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyOpts.json, "json", false,
		"Output as JSON")
	historyCmd.Flags().BoolVar(&historyOpts.clear, "clear", false,
		"Delete the recorded history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	log, err := history.Open(config.HistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer log.Close()

	out := cmd.OutOrStdout()
	if historyOpts.clear {
		if err := log.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintln(out, "History cleared")
		return nil
	}

	records, err := log.Recent(historyOpts.limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if historyOpts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No applies recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tPALETTE\tSOURCE\tRESULT")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", humanize.Time(r.Time()), r.Palette, r.Source, historyResult(r))
	}
	return tw.Flush()
}

// historyResult summarizes the outcome of one run.
func historyResult(r history.Record) string {
	if r.Failed() {
		return "error: " + r.Error
	}
	result := fmt.Sprintf("%d template(s)", len(r.Templates))
	if len(r.Templates) > 0 {
		result += " (" + strings.Join(r.Templates, ", ") + ")"
	}
	if r.Warnings > 0 {
		result += fmt.Sprintf(", %d warning(s)", r.Warnings)
	}
	return result
}
