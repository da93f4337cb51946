package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/palette"
)

// PreviewKeys are the colors shown in a palette's one-line preview.
var PreviewKeys = []string{
	"background",
	"surface",
	"foreground",
	"accent",
	"success",
	"info",
	"warning",
	"error",
}

// SwatchFormatter renders colors as terminal color blocks.
type SwatchFormatter struct {
	opts FormatterOptions
}

// NewSwatchFormatter creates a new swatch formatter.
func NewSwatchFormatter(opts FormatterOptions) *SwatchFormatter {
	return &SwatchFormatter{opts: opts}
}

// FormatPalettes writes each palette name followed by its preview strip.
func (f *SwatchFormatter) FormatPalettes(w io.Writer, palettes []*palette.Palette) error {
	width := 0
	for _, p := range palettes {
		width = max(width, len(p.Name))
	}

	nameStyle := lipgloss.NewStyle().Width(width + 2)
	defaultStyle := nameStyle.Bold(true).Foreground(lipgloss.Color("12"))

	var sb strings.Builder
	for _, p := range palettes {
		style := nameStyle
		if f.opts.DefaultName != "" && p.Name == f.opts.DefaultName {
			style = defaultStyle
		}
		sb.WriteString(style.Render(p.Name))
		sb.WriteString(Strip(p, PreviewKeys))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatPalette writes one swatch line per color.
func (f *SwatchFormatter) FormatPalette(w io.Writer, p *palette.Palette) error {
	keys := orderedKeys(p)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(p.Name) + "\n")
	for _, k := range keys {
		c := p.Colors[k]
		sb.WriteString(fmt.Sprintf("%s %-*s %s\n", Swatch(c), width, k, labelStyle.Render(c.HexAlpha())))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatKeys writes one swatch line per key using the default colors.
func (f *SwatchFormatter) FormatKeys(w io.Writer, keys []string) error {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(Swatch(color.Defaults[k]) + " " + k + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Swatch renders c as a two-cell color block.
func Swatch(c color.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.String())).Render("  ")
}

// Strip renders the given keys of p as adjacent swatches. Keys the palette
// lacks are skipped.
func Strip(p *palette.Palette, keys []string) string {
	var sb strings.Builder
	for _, k := range keys {
		if c, ok := p.Color(k); ok {
			sb.WriteString(Swatch(c))
		}
	}
	return sb.String()
}
