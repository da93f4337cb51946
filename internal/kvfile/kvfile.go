// Package kvfile provides section/key access to configuration-style files.
// Callers hold the File interface; TOML is the only codec today.
package kvfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/clrsync/internal/errs"
)

// File is a parsed key/value document addressed by dotted section paths
// such as "general" or "templates.kitty".
type File interface {
	// Path returns the backing file path (empty for in-memory documents).
	Path() string

	// Parse (re)reads the backing file.
	Parse() error

	// String returns the string at section/key, or "" when absent or not a string.
	String(section, key string) string

	// Uint returns the integer at section/key, or 0 when absent or negative.
	Uint(section, key string) uint32

	// Bool returns the boolean at section/key and whether it was present.
	Bool(section, key string) (bool, bool)

	// Table returns the scalar values of a section.
	Table(section string) map[string]any

	// Subsections returns the sorted names of the tables nested in section.
	Subsections(section string) []string

	// Set inserts or replaces a scalar, creating sections as needed.
	Set(section, key string, value any)

	// RemoveSection deletes a section and everything below it.
	RemoveSection(section string)

	// Save writes the document to its backing file.
	Save() error
}

// TOML is a File backed by a TOML document.
type TOML struct {
	path string
	doc  map[string]any
}

var _ File = (*TOML)(nil)

// NewTOML creates an empty document bound to path. Call Parse to read it.
// A leading ~ in path expands to the user's home directory.
func NewTOML(path string) *TOML {
	return &TOML{
		path: ExpandUser(path),
		doc:  make(map[string]any),
	}
}

// Path returns the backing file path.
func (t *TOML) Path() string {
	return t.path
}

// Parse reads and decodes the backing file.
func (t *TOML) Parse() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.Wrap(errs.FileNotFound, err, "File does not exist", t.path)
		}
		return errs.Wrap(errs.FileReadFailed, err, "", t.path)
	}
	return t.ParseBytes(data)
}

// ParseBytes decodes data in place of the backing file.
func (t *TOML) ParseBytes(data []byte) error {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return errs.Wrap(errs.ParseFailed, err, err.Error(), t.path)
	}
	t.doc = doc
	return nil
}

// String returns the string at section/key.
func (t *TOML) String(section, key string) string {
	s, _ := t.value(section, key).(string)
	return s
}

// Uint returns the integer at section/key.
func (t *TOML) Uint(section, key string) uint32 {
	switch v := t.value(section, key).(type) {
	case int64:
		if v > 0 {
			return uint32(v)
		}
	case float64:
		if v > 0 {
			return uint32(v)
		}
	}
	return 0
}

// Bool returns the boolean at section/key.
func (t *TOML) Bool(section, key string) (bool, bool) {
	b, ok := t.value(section, key).(bool)
	return b, ok
}

// Table returns the scalar values of section; nested tables are omitted.
func (t *TOML) Table(section string) map[string]any {
	tbl := t.lookup(section)
	result := make(map[string]any, len(tbl))
	for k, v := range tbl {
		if _, nested := v.(map[string]any); nested {
			continue
		}
		result[k] = v
	}
	return result
}

// Subsections returns the names of the tables nested in section.
func (t *TOML) Subsections(section string) []string {
	var names []string
	for k, v := range t.lookup(section) {
		if _, ok := v.(map[string]any); ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Set inserts or replaces a scalar value.
func (t *TOML) Set(section, key string, value any) {
	tbl := t.doc
	for _, part := range splitSection(section) {
		sub, ok := tbl[part].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			tbl[part] = sub
		}
		tbl = sub
	}
	tbl[key] = normalize(value)
}

// RemoveSection deletes section from the document.
func (t *TOML) RemoveSection(section string) {
	parts := splitSection(section)
	if len(parts) == 0 {
		return
	}
	parent := t.lookup(strings.Join(parts[:len(parts)-1], "."))
	if parent != nil {
		delete(parent, parts[len(parts)-1])
	}
}

// Save writes the document, creating parent directories as needed. The
// file is replaced atomically and keeps its previous permissions. When the
// path is a symlink its target is replaced and the link is left in place.
func (t *TOML) Save() error {
	if t.path == "" {
		return errs.New(errs.InvalidArg, "Document has no backing file", "")
	}

	target := t.path
	if resolved, err := filepath.EvalSymlinks(t.path); err == nil {
		target = resolved
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Wrap(errs.DirCreateFailed, err, "", dir)
	}

	data, err := toml.Marshal(t.doc)
	if err != nil {
		return errs.Wrap(errs.FileWriteFailed, err, "Failed to encode document", t.path)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return errs.Wrap(errs.FileWriteFailed, err, "Failed to open file for writing", t.path)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return errs.Wrap(errs.FileWriteFailed, err, "Failed to write to file", t.path)
	}
	return nil
}

func (t *TOML) value(section, key string) any {
	tbl := t.lookup(section)
	if tbl == nil {
		return nil
	}
	return tbl[key]
}

func (t *TOML) lookup(section string) map[string]any {
	tbl := t.doc
	for _, part := range splitSection(section) {
		sub, ok := tbl[part].(map[string]any)
		if !ok {
			return nil
		}
		tbl = sub
	}
	return tbl
}

func splitSection(section string) []string {
	var parts []string
	for _, p := range strings.Split(section, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// normalize maps Go integer types onto the int64 the decoder produces so
// reads after writes see the same type.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	default:
		return value
	}
}

// ExpandUser expands a leading ~ to the user's home directory.
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
