package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/clrsync/internal/adapter/output"
)

// listOpts holds options for the list command.
var listOpts struct {
	format   string
	template string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available palettes",
	Long: `List the palettes in the configured palettes directory.

The default format is swatch when stdout is a terminal and plain
otherwise.

Examples:
  # List palettes with color swatches
  clrsync list

  # Feed palette names to a launcher
  clrsync list --format dmenu | fuzzel --dmenu | xargs clrsync apply

  # Custom dmenu lines
  clrsync list --format dmenu --template '{{.Palette.Name}} {{color .Palette "accent" "hex"}}'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "",
		"Output format: "+formatNames())
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Go template for each dmenu line")
}

func runList(cmd *cobra.Command, args []string) error {
	return listPalettes(cmd.OutOrStdout(), listOpts.format)
}

// listPalettes writes the catalog in format.
func listPalettes(w io.Writer, format string) error {
	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	return formatter.FormatPalettes(w, catalog.All())
}

// newFormatter resolves a --format value. An empty value picks swatch on a
// terminal and plain otherwise.
func newFormatter(format string) (output.Formatter, error) {
	ft := output.FormatPlain
	if format == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			ft = output.FormatSwatch
		}
	} else {
		var ok bool
		if ft, ok = output.ParseFormatType(format); !ok {
			return nil, fmt.Errorf("unknown format %q (want %s)", format, formatNames())
		}
	}

	return output.NewFormatter(ft, output.FormatterOptions{
		DefaultName: cfgStore.DefaultTheme(),
		Template:    listOpts.template,
	}), nil
}

func formatNames() string {
	names := make([]string, 0, len(output.FormatTypes()))
	for _, f := range output.FormatTypes() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
