package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/errs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write config values",
	Long: `Read and write config values addressed as SECTION.KEY.

Examples:
  clrsync config get general.default_theme
  clrsync config set general.font_size 12
  clrsync config set templates.kitty.enabled false
  clrsync config path`,
}

var configGetCmd = &cobra.Command{
	Use:   "get SECTION.KEY",
	Short: "Print a config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set SECTION.KEY VALUE",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config files in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
}

// splitConfigKey splits "general.font" into its section and key. The key
// is the part after the last dot so template sections keep their name.
func splitConfigKey(s string) (section, key string, err error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return "", "", errs.New(errs.InvalidArg, "Expected SECTION.KEY", s)
	}
	return s[:i], s[i+1:], nil
}

// parseConfigValue converts a command-line value to the type stored for
// key.
func parseConfigValue(key, value string) (any, error) {
	switch key {
	case config.KeyFontSize:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil || n == 0 {
			return nil, errs.New(errs.InvalidArg, "Expected a positive integer", value)
		}
		return uint32(n), nil
	case config.KeyEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errs.New(errs.InvalidArg, "Expected true or false", value)
		}
		return b, nil
	default:
		return value, nil
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	section, key, err := splitConfigKey(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if section == config.SectionGeneral {
		switch key {
		case config.KeyFontSize:
			fmt.Fprintln(out, cfgStore.FontSize())
			return nil
		case config.KeyPalettesPath:
			fmt.Fprintln(out, cfgStore.PalettesPath())
			return nil
		}
	}

	v, ok := cfgStore.Lookup(section, key)
	if !ok {
		return errs.New(errs.ConfigMissing, "Config value not set", args[0])
	}
	fmt.Fprintln(out, v)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	section, key, err := splitConfigKey(args[0])
	if err != nil {
		return err
	}

	value, err := parseConfigValue(key, args[1])
	if err != nil {
		return err
	}

	if err := cfgStore.Set(section, key, value); err != nil {
		return err
	}
	if cfgStore.ShadowActive() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (written to %s)\n", args[0], value, cfgStore.ShadowPath())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", args[0], value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config:   %s\n", cfgStore.Path())
	if cfgStore.ShadowActive() {
		fmt.Fprintf(out, "shadow:   %s\n", cfgStore.ShadowPath())
	}
	fmt.Fprintf(out, "palettes: %s\n", cfgStore.PalettesPath())
	fmt.Fprintf(out, "history:  %s\n", config.HistoryPath())
	if dir := config.DataDir(); dir != "" {
		fmt.Fprintf(out, "defaults: %s\n", dir)
	}
	return nil
}
