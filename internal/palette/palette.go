// Package palette holds named color palettes, their TOML file codec, and
// the directory-backed catalog that indexes them by name.
package palette

import (
	"maps"
	"slices"

	"github.com/jmylchreest/clrsync/internal/color"
)

// Palette is a named assignment of colors to color keys.
type Palette struct {
	Name   string
	Colors map[string]color.Color

	// FilePath is the file the palette was loaded from or last saved to.
	// It stays empty until one of those succeeds.
	FilePath string
}

// New creates an empty palette.
func New(name string) *Palette {
	return &Palette{
		Name:   name,
		Colors: make(map[string]color.Color),
	}
}

// NewDefault creates a palette holding the compiled-in default for every
// registry key.
func NewDefault(name string) *Palette {
	p := New(name)
	for _, key := range color.Keys {
		p.Colors[key] = color.Defaults[key]
	}
	return p
}

// Color returns the color assigned to key.
func (p *Palette) Color(key string) (color.Color, bool) {
	c, ok := p.Colors[key]
	return c, ok
}

// SetColor assigns c to key.
func (p *Palette) SetColor(key string, c color.Color) {
	if p.Colors == nil {
		p.Colors = make(map[string]color.Color)
	}
	p.Colors[key] = c
}

// Keys returns the palette's color keys sorted.
func (p *Palette) Keys() []string {
	return slices.Sorted(maps.Keys(p.Colors))
}

// Clone returns a deep copy of the palette.
func (p *Palette) Clone() *Palette {
	return &Palette{
		Name:     p.Name,
		Colors:   maps.Clone(p.Colors),
		FilePath: p.FilePath,
	}
}
