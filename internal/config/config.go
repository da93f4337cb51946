// Package config handles the layered clrsync configuration: a primary TOML
// file plus a shadow file that takes all writes when the primary is not
// owner-writable.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/kvfile"
)

// Options configures Open.
type Options struct {
	// SystemDir is the system-wide defaults directory used to seed the
	// user config directory. Empty disables seeding.
	SystemDir string

	Logger *slog.Logger
}

// Store is the layered configuration. Exactly one of the primary file or
// the shadow file receives writes, decided once by Open.
type Store struct {
	logger  *slog.Logger
	path    string
	userDir string

	primary kvfile.File

	// shadowPath is set when the primary is read-only; shadow is loaded
	// at Open when it parses, or lazily on first write.
	shadowPath string
	shadow     kvfile.File
}

// Open seeds the directory holding path from opts.SystemDir, parses the
// primary file, and activates the shadow file when the primary exists but
// is not owner-writable. A missing primary is an empty document that is
// created on first write.
func Open(path string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path = kvfile.ExpandUser(path)
	if path == "" {
		return nil, errs.New(errs.ConfigMissing, "Config path is empty", "")
	}

	s := &Store{
		logger:  logger,
		path:    path,
		userDir: filepath.Dir(path),
	}

	if err := SeedUserDir(opts.SystemDir, s.userDir); err != nil {
		logger.Warn("failed to seed config directory", "from", opts.SystemDir, "to", s.userDir, "error", err)
	}

	primary := kvfile.NewTOML(path)
	if err := primary.Parse(); err != nil {
		if !errs.Is(err, errs.FileNotFound) {
			return nil, errs.Wrap(errs.ConfigInvalid, err, err.Error(), path)
		}
		logger.Debug("config file not found, starting empty", "path", path)
	}
	s.primary = primary

	if !primaryWritable(path) {
		s.shadowPath = ShadowPath(path)
		logger.Debug("config file is read-only, using shadow", "path", path, "shadow", s.shadowPath)

		if _, err := os.Stat(s.shadowPath); err == nil {
			shadow := kvfile.NewTOML(s.shadowPath)
			if err := shadow.Parse(); err != nil {
				logger.Warn("failed to load shadow config", "path", s.shadowPath, "error", err)
			} else {
				s.shadow = shadow
			}
		}
	}

	return s, nil
}

// ShadowPath returns the shadow file used for a read-only primary:
// config.toml becomes config-temp.toml in the same directory.
func ShadowPath(primary string) string {
	ext := filepath.Ext(primary)
	stem := strings.TrimSuffix(filepath.Base(primary), ext)
	return filepath.Join(filepath.Dir(primary), stem+"-temp"+ext)
}

// primaryWritable reports whether writes may target path. A missing file is
// writable; an existing file must carry the owner-write bit.
func primaryWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	return info.Mode().Perm()&0200 != 0
}

// Path returns the primary config file path.
func (s *Store) Path() string {
	return s.path
}

// UserDir returns the directory holding the primary config file.
func (s *Store) UserDir() string {
	return s.userDir
}

// ShadowActive reports whether writes go to the shadow file.
func (s *Store) ShadowActive() bool {
	return s.shadowPath != ""
}

// ShadowPath returns the active shadow path, or "" when the primary is
// writable.
func (s *Store) ShadowPath() string {
	return s.shadowPath
}

// String returns the shadow's non-empty value, else the primary's.
func (s *Store) String(section, key string) string {
	if s.shadow != nil {
		if v := s.shadow.String(section, key); v != "" {
			return v
		}
	}
	return s.primary.String(section, key)
}

// Uint returns the shadow's non-zero value, else the primary's.
func (s *Store) Uint(section, key string) uint32 {
	if s.shadow != nil {
		if v := s.shadow.Uint(section, key); v != 0 {
			return v
		}
	}
	return s.primary.Uint(section, key)
}

// Bool returns the shadow's value when present, else the primary's.
func (s *Store) Bool(section, key string) (bool, bool) {
	if s.shadow != nil {
		if v, ok := s.shadow.Bool(section, key); ok {
			return v, true
		}
	}
	return s.primary.Bool(section, key)
}

// Lookup returns the raw layered value at section/key.
func (s *Store) Lookup(section, key string) (any, bool) {
	if s.shadow != nil {
		if v, ok := s.shadow.Table(section)[key]; ok && !isEmpty(v) {
			return v, true
		}
	}
	v, ok := s.primary.Table(section)[key]
	return v, ok
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case int64:
		return t == 0
	default:
		return v == nil
	}
}

// Set writes value to the authoritative file and saves it.
func (s *Store) Set(section, key string, value any) error {
	f := s.writable()
	f.Set(section, key, value)
	return f.Save()
}

// writable returns the file that receives writes, creating the shadow
// document on first use.
func (s *Store) writable() kvfile.File {
	if s.shadowPath == "" {
		return s.primary
	}
	if s.shadow == nil {
		shadow := kvfile.NewTOML(s.shadowPath)
		if err := shadow.Parse(); err != nil && !errs.Is(err, errs.FileNotFound) {
			s.logger.Warn("shadow config unreadable, starting empty", "path", s.shadowPath, "error", err)
		}
		s.shadow = shadow
	}
	return s.shadow
}

// sections returns the union of subsection names under section across both
// files.
func (s *Store) sections(section string) []string {
	seen := make(map[string]bool)
	var names []string
	files := []kvfile.File{s.primary}
	if s.shadow != nil {
		files = append(files, s.shadow)
	}
	for _, f := range files {
		for _, name := range f.Subsections(section) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
