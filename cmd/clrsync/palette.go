package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/palette"
)

// paletteOpts holds options for the palette commands.
var paletteOpts struct {
	format string
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Create, inspect and edit palettes",
}

var paletteCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a palette from the bundled default",
	Long: `Create a palette seeded from the bundled default palette and save it to
the palettes directory as NAME.toml.

Examples:
  clrsync palette create mytheme
  clrsync palette set-color mytheme accent '#FF79C6'`,
	Args: cobra.ExactArgs(1),
	RunE: runPaletteCreate,
}

var paletteDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a palette file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaletteDelete,
}

var paletteShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show every color of a palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaletteShow,
}

var paletteSetColorCmd = &cobra.Command{
	Use:   "set-color NAME KEY COLOR",
	Short: "Set one color of a palette",
	Long: `Set one color of a palette and save it. COLOR is #RRGGBB or #RRGGBBAA.

Examples:
  clrsync palette set-color mytheme background '#1E1E2E'
  clrsync palette set-color mytheme overlay '#00000080'`,
	Args: cobra.ExactArgs(3),
	RunE: runPaletteSetColor,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.AddCommand(paletteCreateCmd, paletteDeleteCmd, paletteShowCmd, paletteSetColorCmd)

	paletteShowCmd.Flags().StringVarP(&paletteOpts.format, "format", "f", "",
		"Output format: "+formatNames())
}

// lookupPalette loads the catalog and returns the palette called name.
func lookupPalette(name string) (*palette.Catalog, *palette.Palette, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	p, ok := catalog.Get(name)
	if !ok {
		return nil, nil, errs.New(errs.PaletteNotFound, "Palette not found", name)
	}
	return catalog, p, nil
}

func runPaletteCreate(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	p, err := catalog.Create(args[0], cfgStore.PalettesPath())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created palette %s at %s\n", p.Name, p.FilePath)
	return nil
}

func runPaletteDelete(cmd *cobra.Command, args []string) error {
	catalog, p, err := lookupPalette(args[0])
	if err != nil {
		return err
	}

	if err := catalog.Delete(p.FilePath, p.Name); err != nil {
		return err
	}
	if cfgStore.DefaultTheme() == p.Name {
		logger.Warn("deleted the default theme", "name", p.Name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted palette %s\n", p.Name)
	return nil
}

func runPaletteShow(cmd *cobra.Command, args []string) error {
	_, p, err := lookupPalette(args[0])
	if err != nil {
		return err
	}

	formatter, err := newFormatter(paletteOpts.format)
	if err != nil {
		return err
	}
	return formatter.FormatPalette(cmd.OutOrStdout(), p)
}

func runPaletteSetColor(cmd *cobra.Command, args []string) error {
	name, key, value := args[0], args[1], args[2]
	if !color.IsKey(key) {
		return errs.New(errs.InvalidArg, "Unknown color key (see clrsync vars)", key)
	}

	c, err := color.ParseHex(value)
	if err != nil {
		return err
	}

	_, p, err := lookupPalette(name)
	if err != nil {
		return err
	}

	p.SetColor(key, c)
	if err := palette.SaveFile(p, p.FilePath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %s\n", p.Name, key, c.HexAlpha())
	return nil
}
