package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/kvfile"
)

// Config file layout.
const (
	SectionGeneral   = "general"
	SectionTemplates = "templates"

	KeyDefaultTheme = "default_theme"
	KeyPalettesPath = "palettes_path"
	KeyFont         = "font"
	KeyFontSize     = "font_size"

	KeyInputPath  = "input_path"
	KeyOutputPath = "output_path"
	KeyEnabled    = "enabled"
	KeyReloadCmd  = "reload_cmd"

	// keyRemoved marks a template binding deleted while the primary file
	// is read-only.
	keyRemoved = "removed"
)

// DefaultFontSize is returned when no font size is configured.
const DefaultFontSize = 14

// TemplateBinding is one [templates.<name>] entry.
type TemplateBinding struct {
	Name       string `json:"name" yaml:"name"`
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	ReloadCmd  string `json:"reload_cmd" yaml:"reload_cmd"`
}

// DefaultTheme returns the palette applied by "clrsync --apply".
func (s *Store) DefaultTheme() string {
	return s.String(SectionGeneral, KeyDefaultTheme)
}

// SetDefaultTheme persists the default palette name.
func (s *Store) SetDefaultTheme(name string) error {
	return s.Set(SectionGeneral, KeyDefaultTheme, name)
}

// PalettesPath returns the palette directory with ~ expanded. It defaults
// to the palettes directory beside the config file.
func (s *Store) PalettesPath() string {
	if p := s.String(SectionGeneral, KeyPalettesPath); p != "" {
		return kvfile.ExpandUser(p)
	}
	return filepath.Join(s.userDir, "palettes")
}

// SetPalettesPath persists the palette directory.
func (s *Store) SetPalettesPath(path string) error {
	return s.Set(SectionGeneral, KeyPalettesPath, path)
}

// Font returns the configured editor font.
func (s *Store) Font() string {
	return s.String(SectionGeneral, KeyFont)
}

// SetFont persists the editor font.
func (s *Store) SetFont(font string) error {
	return s.Set(SectionGeneral, KeyFont, font)
}

// FontSize returns the configured font size, or DefaultFontSize.
func (s *Store) FontSize() uint32 {
	if v := s.Uint(SectionGeneral, KeyFontSize); v != 0 {
		return v
	}
	return DefaultFontSize
}

// SetFontSize persists the font size.
func (s *Store) SetFontSize(size uint32) error {
	if size == 0 {
		return errs.New(errs.InvalidArg, "Font size must be positive", "")
	}
	return s.Set(SectionGeneral, KeyFontSize, size)
}

func templateSection(name string) string {
	return SectionTemplates + "." + name
}

// validTemplateName rejects names that cannot be a single table key under
// [templates]. Dots would nest the binding one level deeper.
func validTemplateName(name string) error {
	if name == "" {
		return errs.New(errs.InvalidArg, "Template has no name", "")
	}
	if strings.Contains(name, ".") {
		return errs.New(errs.InvalidArg, "Template name cannot contain dots", name)
	}
	return nil
}

// Templates returns every template binding sorted by name. Fields set in
// the shadow file override the primary's; a binding with no enabled key
// is disabled.
func (s *Store) Templates() []TemplateBinding {
	names := s.sections(SectionTemplates)
	slices.Sort(names)

	var bindings []TemplateBinding
	for _, name := range names {
		section := templateSection(name)
		if s.shadow != nil {
			if removed, _ := s.shadow.Bool(section, keyRemoved); removed {
				continue
			}
		}
		enabled, _ := s.Bool(section, KeyEnabled)
		bindings = append(bindings, TemplateBinding{
			Name:       name,
			InputPath:  s.String(section, KeyInputPath),
			OutputPath: s.String(section, KeyOutputPath),
			Enabled:    enabled,
			ReloadCmd:  s.String(section, KeyReloadCmd),
		})
	}
	return bindings
}

// Template returns the binding called name.
func (s *Store) Template(name string) (TemplateBinding, error) {
	for _, b := range s.Templates() {
		if b.Name == name {
			return b, nil
		}
	}
	return TemplateBinding{}, errs.New(errs.TemplateNotFound, "Template not found", name)
}

// UpdateTemplate writes every field of b. The first failed write is
// returned and the remaining fields are not written.
func (s *Store) UpdateTemplate(b TemplateBinding) error {
	if err := validTemplateName(b.Name); err != nil {
		return err
	}

	section := templateSection(b.Name)
	fields := []struct {
		key   string
		value any
	}{
		{KeyInputPath, b.InputPath},
		{KeyOutputPath, b.OutputPath},
		{KeyEnabled, b.Enabled},
		{KeyReloadCmd, b.ReloadCmd},
	}
	for _, f := range fields {
		if err := s.Set(section, f.key, f.value); err != nil {
			return err
		}
	}

	if s.shadow != nil {
		if removed, _ := s.shadow.Bool(section, keyRemoved); removed {
			return s.Set(section, keyRemoved, false)
		}
	}
	return nil
}

// RemoveTemplate deletes the binding called name. When deleteSource is set
// the template source file is removed first.
func (s *Store) RemoveTemplate(name string, deleteSource bool) error {
	b, err := s.Template(name)
	if err != nil {
		return err
	}

	if deleteSource && b.InputPath != "" {
		src := kvfile.ExpandUser(b.InputPath)
		if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
			return errs.Wrap(errs.FileWriteFailed, err, "Failed to delete template file", src)
		}
	}

	section := templateSection(name)
	f := s.writable()
	f.RemoveSection(section)
	if s.ShadowActive() && slices.Contains(s.primary.Subsections(SectionTemplates), name) {
		f.Set(section, keyRemoved, true)
	}
	return f.Save()
}
