package palette

import (
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/kvfile"
)

// Catalog indexes the palettes of a directory by name.
type Catalog struct {
	logger   *slog.Logger
	palettes map[string]*Palette
}

// NewCatalog creates an empty catalog.
func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		logger:   logger,
		palettes: make(map[string]*Palette),
	}
}

// LoadFromDirectory rebuilds the catalog from every palette file in dir.
// A missing directory yields an empty catalog. Files that fail to parse
// are logged and skipped. When two files share a palette name the one
// whose filename sorts last wins.
func (c *Catalog) LoadFromDirectory(dir string) error {
	dir = kvfile.ExpandUser(dir)
	palettes := make(map[string]*Palette)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.palettes = palettes
			return nil
		}
		return errs.Wrap(errs.FileReadFailed, err, "Failed to read palette directory", dir)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), FileExt) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		p, err := LoadFile(path)
		if err != nil {
			c.logger.Warn("skipping palette file", "path", path, "error", err)
			continue
		}
		if prev, ok := palettes[p.Name]; ok {
			c.logger.Debug("palette name collision", "name", p.Name, "replaced", prev.FilePath, "by", path)
		}
		palettes[p.Name] = p
	}

	c.palettes = palettes
	c.logger.Debug("loaded palettes", "dir", dir, "count", len(palettes))
	return nil
}

// Get returns the palette called name.
func (c *Catalog) Get(name string) (*Palette, bool) {
	p, ok := c.palettes[name]
	return p, ok
}

// Names returns the catalog's palette names sorted.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.palettes))
}

// All returns the palettes sorted by name.
func (c *Catalog) All() []*Palette {
	names := c.Names()
	result := make([]*Palette, 0, len(names))
	for _, name := range names {
		result = append(result, c.palettes[name])
	}
	return result
}

// Len returns the number of palettes.
func (c *Catalog) Len() int {
	return len(c.palettes)
}

// Add inserts or replaces a palette by name.
func (c *Catalog) Add(p *Palette) {
	c.palettes[p.Name] = p
}

// PathFor returns the file a palette called name is saved to in dir.
func PathFor(dir, name string) string {
	return filepath.Join(kvfile.ExpandUser(dir), name+FileExt)
}

// Save writes p to <dir>/<name>.toml and adds it to the catalog.
func (c *Catalog) Save(p *Palette, dir string) error {
	if err := validName(p.Name); err != nil {
		return err
	}
	if err := SaveFile(p, PathFor(dir, p.Name)); err != nil {
		return err
	}
	c.Add(p)
	return nil
}

// Create seeds a palette called name from the bundled default, persists
// it to dir, and adds it to the catalog.
func (c *Catalog) Create(name, dir string) (*Palette, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if _, exists := c.palettes[name]; exists {
		return nil, errs.New(errs.InvalidArg, "Palette already exists", name)
	}

	p, err := GetEmbedded(DefaultPaletteName)
	if err != nil {
		return nil, err
	}
	p.Name = name

	if err := c.Save(p, dir); err != nil {
		return nil, err
	}
	c.logger.Info("created palette", "name", name, "path", p.FilePath)
	return p, nil
}

// Delete removes the palette file at path and then the catalog entry for
// name. When the file cannot be removed the entry is kept.
func (c *Catalog) Delete(path, name string) error {
	if path == "" {
		return errs.New(errs.InvalidArg, "Palette has no backing file", name)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.FileWriteFailed, err, "Failed to delete palette file", path)
	}
	delete(c.palettes, name)
	c.logger.Info("deleted palette", "name", name, "path", path)
	return nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errs.New(errs.InvalidArg, "Invalid palette name", name)
	}
	return nil
}
