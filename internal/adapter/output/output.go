// Package output provides output formatters for palettes and color keys.
package output

import (
	"io"
	"slices"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/palette"
)

// Formatter renders palettes and the color-key registry.
type Formatter interface {
	// FormatPalettes writes a listing of palettes.
	FormatPalettes(w io.Writer, palettes []*palette.Palette) error

	// FormatPalette writes one palette with all of its colors.
	FormatPalette(w io.Writer, p *palette.Palette) error

	// FormatKeys writes the given color keys with their default colors.
	FormatKeys(w io.Writer, keys []string) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatDmenu  FormatType = "dmenu"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatSwatch FormatType = "swatch"
)

// FormatTypes lists every supported format.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatYAML, FormatSwatch}
}

// ParseFormatType returns the format named s and whether it is known.
func ParseFormatType(s string) (FormatType, bool) {
	f := FormatType(s)
	return f, slices.Contains(FormatTypes(), f)
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	DefaultName string // Palette marked as the default in listings
	Template    string // Custom line template for the dmenu format
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatSwatch:
		return NewSwatchFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// paletteView is the serialized form of a palette.
type paletteView struct {
	Name    string            `json:"name" yaml:"name"`
	Path    string            `json:"path,omitempty" yaml:"path,omitempty"`
	Default bool              `json:"default,omitempty" yaml:"default,omitempty"`
	Colors  map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// keyView is the serialized form of a registry key.
type keyView struct {
	Key     string `json:"key" yaml:"key"`
	Default string `json:"default" yaml:"default"`
}

func newPaletteView(p *palette.Palette, opts FormatterOptions, withColors bool) paletteView {
	v := paletteView{
		Name:    p.Name,
		Path:    p.FilePath,
		Default: opts.DefaultName != "" && p.Name == opts.DefaultName,
	}
	if withColors {
		v.Colors = make(map[string]string, len(p.Colors))
		for k, c := range p.Colors {
			v.Colors[k] = c.HexAlpha()
		}
	}
	return v
}

func newKeyViews(keys []string) []keyView {
	views := make([]keyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, keyView{Key: k, Default: color.Defaults[k].HexAlpha()})
	}
	return views
}

// orderedKeys returns p's keys in registry order followed by any other
// keys sorted.
func orderedKeys(p *palette.Palette) []string {
	keys := make([]string, 0, len(p.Colors))
	for _, k := range color.Keys {
		if _, ok := p.Colors[k]; ok {
			keys = append(keys, k)
		}
	}
	for _, k := range p.Keys() {
		if !color.IsKey(k) {
			keys = append(keys, k)
		}
	}
	return keys
}
