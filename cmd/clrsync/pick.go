package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/palette"
	"github.com/jmylchreest/clrsync/internal/theme"
	"github.com/jmylchreest/clrsync/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick and apply a palette interactively",
	Long: `Open an interactive palette picker with a color preview.

Keys:
  enter  apply the selected palette
  d      make it the default theme
  c      copy the palette file path
  y      copy the accent color
  r      reload palettes
  /      filter
  ?      help
  q      quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	return tui.Run(&pickBackend{store: cfgStore})
}

// pickBackend connects the picker to the config store, the palettes
// directory and the apply history.
type pickBackend struct {
	store   *config.Store
	catalog *palette.Catalog
}

func (b *pickBackend) Palettes() ([]*palette.Palette, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	b.catalog = catalog
	return catalog.All(), nil
}

func (b *pickBackend) Apply(name string) (*theme.Report, error) {
	if b.catalog == nil {
		if _, err := b.Palettes(); err != nil {
			return nil, err
		}
	}

	req := applyRequest{name: name}
	renderer := theme.NewRenderer(b.catalog, b.store, theme.WithLogger(logger))
	report, err := renderer.ApplyTheme(name)
	recordRun(req, report, err)
	return report, err
}

func (b *pickBackend) DefaultTheme() string {
	return b.store.DefaultTheme()
}

func (b *pickBackend) SetDefaultTheme(name string) error {
	return b.store.SetDefaultTheme(name)
}
