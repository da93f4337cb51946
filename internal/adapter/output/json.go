package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/clrsync/internal/palette"
)

// JSONFormatter formats palettes as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatPalettes writes palettes as a JSON array without their colors.
func (f *JSONFormatter) FormatPalettes(w io.Writer, palettes []*palette.Palette) error {
	views := make([]paletteView, 0, len(palettes))
	for _, p := range palettes {
		views = append(views, newPaletteView(p, f.opts, false))
	}
	return encodeJSON(w, views)
}

// FormatPalette writes a single palette as JSON.
func (f *JSONFormatter) FormatPalette(w io.Writer, p *palette.Palette) error {
	return encodeJSON(w, newPaletteView(p, f.opts, true))
}

// FormatKeys writes the keys and their defaults as a JSON array.
func (f *JSONFormatter) FormatKeys(w io.Writer, keys []string) error {
	return encodeJSON(w, newKeyViews(keys))
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
