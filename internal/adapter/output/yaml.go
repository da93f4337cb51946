package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/clrsync/internal/palette"
)

// YAMLFormatter formats palettes as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatPalettes writes palettes as a YAML sequence without their colors.
func (f *YAMLFormatter) FormatPalettes(w io.Writer, palettes []*palette.Palette) error {
	views := make([]paletteView, 0, len(palettes))
	for _, p := range palettes {
		views = append(views, newPaletteView(p, f.opts, false))
	}
	return encodeYAML(w, views)
}

// FormatPalette writes a single palette as YAML.
func (f *YAMLFormatter) FormatPalette(w io.Writer, p *palette.Palette) error {
	return encodeYAML(w, newPaletteView(p, f.opts, true))
}

// FormatKeys writes the keys and their defaults as a YAML sequence.
func (f *YAMLFormatter) FormatKeys(w io.Writer, keys []string) error {
	return encodeYAML(w, newKeyViews(keys))
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
