package theme

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/kvfile"
	"github.com/jmylchreest/clrsync/internal/palette"
)

// State is the lifecycle position of a Template.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateRendered
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateRendered:
		return "rendered"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Template binds a source template file to its rendered destination.
type Template struct {
	Name         string
	TemplatePath string
	OutputPath   string
	Enabled      bool
	ReloadCmd    string

	raw      string
	rendered string
	state    State
}

// NewTemplate creates an unloaded template. Both paths have ~ expanded and
// are cleaned.
func NewTemplate(name, templatePath, outputPath string) *Template {
	return &Template{
		Name:         name,
		TemplatePath: normalizePath(templatePath),
		OutputPath:   normalizePath(outputPath),
	}
}

// FromBinding creates an unloaded template from a config binding.
func FromBinding(b config.TemplateBinding) *Template {
	t := NewTemplate(b.Name, b.InputPath, b.OutputPath)
	t.Enabled = b.Enabled
	t.ReloadCmd = b.ReloadCmd
	return t
}

func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(kvfile.ExpandUser(path))
}

// State returns the lifecycle state.
func (t *Template) State() State {
	return t.state
}

// Raw returns the loaded template text.
func (t *Template) Raw() string {
	return t.raw
}

// Rendered returns the text produced by the last successful Apply.
func (t *Template) Rendered() string {
	return t.rendered
}

// Load reads the template source.
func (t *Template) Load() error {
	data, err := os.ReadFile(t.TemplatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.Wrap(errs.TemplateNotFound, err, "Template file not found", t.TemplatePath)
		}
		return errs.Wrap(errs.TemplateLoadFailed, err, "Failed to read template", t.TemplatePath)
	}

	t.raw = string(data)
	t.rendered = ""
	t.state = StateLoaded
	return nil
}

// Apply renders the loaded text with p. On failure the previous rendered
// text and state are kept.
func (t *Template) Apply(p *palette.Palette) error {
	if t.state == StateUnloaded {
		return errs.New(errs.TemplateApplyFailed, "Template not loaded", t.Name)
	}

	out, err := Render(t.raw, p)
	if err != nil {
		return errs.Wrap(errs.TemplateApplyFailed, err, "Failed to render template", renderContext(t.Name, err))
	}

	t.rendered = out
	t.state = StateRendered
	return nil
}

// Save writes the rendered text to the output path, creating parent
// directories as needed.
func (t *Template) Save() error {
	if t.state != StateRendered && t.state != StateSaved {
		return errs.New(errs.InvalidArg, "Template has not been rendered", t.Name)
	}

	dir := filepath.Dir(t.OutputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Wrap(errs.DirCreateFailed, err, "Failed to create output directory", dir)
	}

	if err := os.WriteFile(t.OutputPath, []byte(t.rendered), 0644); err != nil {
		return errs.Wrap(errs.FileWriteFailed, err, "Failed to write output file", t.OutputPath)
	}

	t.state = StateSaved
	return nil
}

// renderContext names the template and, for engine errors, what failed in
// it, e.g. "kitty: Unknown color format foo".
func renderContext(name string, err error) string {
	var e *errs.Error
	if !errors.As(err, &e) {
		return name + ": " + err.Error()
	}
	if e.Context == "" {
		return name + ": " + e.Message
	}
	return name + ": " + e.Message + " " + e.Context
}
