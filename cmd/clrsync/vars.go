package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/color"
)

// varsOpts holds options for the vars command.
var varsOpts struct {
	format string
	fields bool
}

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "Show the color keys templates can use",
	Long: `Show every color key with its default color.

Templates reference keys as {key} or {key.field}. --fields lists the
fields instead.

Examples:
  clrsync vars
  clrsync vars --format json
  clrsync vars --fields`,
	Args: cobra.NoArgs,
	RunE: runVars,
}

func init() {
	rootCmd.AddCommand(varsCmd)

	varsCmd.Flags().StringVarP(&varsOpts.format, "format", "f", "",
		"Output format: "+formatNames())
	varsCmd.Flags().BoolVar(&varsOpts.fields, "fields", false,
		"List the {key.field} fields")
}

func runVars(cmd *cobra.Command, args []string) error {
	if varsOpts.fields {
		for _, f := range color.Fields() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	}
	return printKeys(cmd.OutOrStdout(), varsOpts.format)
}

// printKeys writes the color-key registry in format.
func printKeys(w io.Writer, format string) error {
	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatKeys(w, color.Keys)
}
