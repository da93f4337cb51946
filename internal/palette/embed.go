package palette

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/kvfile"
)

// EmbeddedPalettes contains the bundled palette files.
//
//go:embed palettes/*.toml
var EmbeddedPalettes embed.FS

// DefaultPaletteName is the bundled palette new palettes are seeded from.
const DefaultPaletteName = "cursed"

// GetEmbedded decodes a bundled palette by name. The result has no
// FilePath since it does not live on disk.
func GetEmbedded(name string) (*Palette, error) {
	data, err := EmbeddedPalettes.ReadFile("palettes/" + name + FileExt)
	if err != nil {
		return nil, errs.Wrap(errs.ResourceMissing, err, "Bundled palette not found", name)
	}

	f := kvfile.NewTOML("")
	if err := f.ParseBytes(data); err != nil {
		return nil, errs.Wrap(errs.PaletteLoadFailed, err, "Bundled palette is invalid", name)
	}
	p, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// ListEmbedded returns the names of the bundled palettes.
func ListEmbedded() []string {
	entries, err := fs.ReadDir(EmbeddedPalettes, "palettes")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), FileExt))
	}
	return names
}
