package palette

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/kvfile"
)

// Palette file layout.
const (
	sectionGeneral = "general"
	sectionColors  = "colors"
	keyName        = "name"

	// FileExt is the extension of palette files in a palette directory.
	FileExt = ".toml"
)

// Decode builds a palette from a parsed file. Every registry key starts at
// its compiled-in default and is overridden by the file's [colors] entry
// when present. Keys outside the registry are ignored.
func Decode(f kvfile.File) (*Palette, error) {
	p := NewDefault(f.String(sectionGeneral, keyName))

	for _, key := range color.Keys {
		s := f.String(sectionColors, key)
		if s == "" {
			continue
		}
		c, err := color.ParseHex(s)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidFormat, err, "Invalid color for "+key, s)
		}
		p.Colors[key] = c
	}

	return p, nil
}

// Encode writes the palette's name and every registry key into f. Keys the
// palette does not hold are written with their default value.
func Encode(p *Palette, f kvfile.File) {
	f.Set(sectionGeneral, keyName, p.Name)
	for _, key := range color.Keys {
		c, ok := p.Colors[key]
		if !ok {
			c = color.Defaults[key]
		}
		f.Set(sectionColors, key, c.HexAlpha())
	}
}

// LoadFile reads a palette from path. A palette without a name takes the
// file's stem.
func LoadFile(path string) (*Palette, error) {
	path = kvfile.ExpandUser(path)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.FileNotFound, err, "Palette file does not exist", path)
		}
		return nil, errs.Wrap(errs.FileOpenFailed, err, "", path)
	}

	f := kvfile.NewTOML(path)
	if err := f.Parse(); err != nil {
		return nil, errs.Wrap(errs.PaletteLoadFailed, err, "Failed to parse palette", path)
	}

	p, err := Decode(f)
	if err != nil {
		return nil, errs.Wrap(errs.PaletteLoadFailed, err, err.Error(), path)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.FilePath = path
	return p, nil
}

// SaveFile writes the palette to path and records path on success.
func SaveFile(p *Palette, path string) error {
	if p.Name == "" {
		return errs.New(errs.InvalidArg, "Palette has no name", path)
	}

	f := kvfile.NewTOML(path)
	Encode(p, f)
	if err := f.Save(); err != nil {
		return err
	}
	p.FilePath = f.Path()
	return nil
}
