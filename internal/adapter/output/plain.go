package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/clrsync/internal/palette"
)

// PlainFormatter formats palettes as plain text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// FormatPalettes writes a bulleted list of palette names.
func (f *PlainFormatter) FormatPalettes(w io.Writer, palettes []*palette.Palette) error {
	var sb strings.Builder
	sb.WriteString("Available themes:\n")
	for _, p := range palettes {
		sb.WriteString(" - " + p.Name)
		if f.opts.DefaultName != "" && p.Name == f.opts.DefaultName {
			sb.WriteString(" (default)")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatPalette writes the palette name followed by one "key value" line
// per color.
func (f *PlainFormatter) FormatPalette(w io.Writer, p *palette.Palette) error {
	keys := orderedKeys(p)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	var sb strings.Builder
	sb.WriteString(p.Name + "\n")
	if p.FilePath != "" {
		sb.WriteString("  file: " + p.FilePath + "\n")
	}
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-*s  %s\n", width, k, p.Colors[k].HexAlpha()))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatKeys writes one key per line.
func (f *PlainFormatter) FormatKeys(w io.Writer, keys []string) error {
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}
