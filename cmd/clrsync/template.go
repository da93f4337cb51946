package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/kvfile"
)

// templateOpts holds options for the template commands.
var templateOpts struct {
	json         bool
	reloadCmd    string
	disabled     bool
	deleteSource bool
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage template bindings",
	Long: `Manage the [templates.<name>] bindings in the config file.

A binding maps a template source containing {key} placeholders to the
output file it is rendered to, with an optional reload command run after
each write. When the config file is read-only, changes go to a
config-temp.toml shadow beside it.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List template bindings",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateAddCmd = &cobra.Command{
	Use:   "add NAME INPUT OUTPUT",
	Short: "Add or update a template binding",
	Long: `Add or update a template binding.

Examples:
  clrsync template add kitty ~/.config/clrsync/templates/kitty.conf \
    ~/.config/kitty/colors.conf --reload 'pkill -USR1 kitty'`,
	Args: cobra.ExactArgs(3),
	RunE: runTemplateAdd,
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a template binding",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateRemove,
}

var templateEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a template binding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTemplateEnabled(cmd, args[0], true)
	},
}

var templateDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a template binding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTemplateEnabled(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateListCmd, templateAddCmd, templateRemoveCmd,
		templateEnableCmd, templateDisableCmd)

	templateListCmd.Flags().BoolVar(&templateOpts.json, "json", false,
		"Output as JSON")
	templateAddCmd.Flags().StringVar(&templateOpts.reloadCmd, "reload", "",
		"Shell command run after the output is written")
	templateAddCmd.Flags().BoolVar(&templateOpts.disabled, "disabled", false,
		"Add the binding disabled")
	templateRemoveCmd.Flags().BoolVar(&templateOpts.deleteSource, "delete-source", false,
		"Also delete the template source file")
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	bindings := cfgStore.Templates()

	if templateOpts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(bindings)
	}

	if len(bindings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No templates configured")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENABLED\tINPUT\tOUTPUT\tRELOAD")
	for _, b := range bindings {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n", b.Name, b.Enabled, b.InputPath, b.OutputPath, b.ReloadCmd)
	}
	return tw.Flush()
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	b := config.TemplateBinding{
		Name:       args[0],
		InputPath:  args[1],
		OutputPath: args[2],
		Enabled:    !templateOpts.disabled,
		ReloadCmd:  templateOpts.reloadCmd,
	}

	if _, err := os.Stat(kvfile.ExpandUser(b.InputPath)); err != nil {
		logger.Warn("template source is not readable yet", "path", b.InputPath, "error", err)
	}

	if err := cfgStore.UpdateTemplate(b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s\n", b.Name)
	return nil
}

func runTemplateRemove(cmd *cobra.Command, args []string) error {
	if err := cfgStore.RemoveTemplate(args[0], templateOpts.deleteSource); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed template %s\n", args[0])
	return nil
}

func setTemplateEnabled(cmd *cobra.Command, name string, enabled bool) error {
	b, err := cfgStore.Template(name)
	if err != nil {
		return err
	}

	b.Enabled = enabled
	if err := cfgStore.UpdateTemplate(b); err != nil {
		return err
	}

	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s template %s\n", state, name)
	return nil
}
