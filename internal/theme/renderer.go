package theme

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/palette"
)

// BindingSource supplies the template bindings to apply. *config.Store
// implements it.
type BindingSource interface {
	Templates() []config.TemplateBinding
}

// CommandRunner runs a template's reload command.
type CommandRunner interface {
	Run(command string) error
}

// ShellRunner runs commands with "sh -c" and waits for them to exit.
type ShellRunner struct{}

// Run executes command. A non-zero exit returns an error carrying the
// command's combined output.
func (ShellRunner) Run(command string) error {
	cmd := exec.Command("sh", "-c", command)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Applied describes one template written during an apply.
type Applied struct {
	Name       string `json:"name"`
	OutputPath string `json:"output_path"`
	Bytes      int    `json:"bytes"`
}

// Report summarizes an apply run. On failure it covers the templates
// handled before the failing one.
type Report struct {
	Palette  string    `json:"palette"`
	Applied  []Applied `json:"applied"`
	Skipped  []string  `json:"skipped,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Renderer applies palettes to every enabled template binding.
type Renderer struct {
	logger   *slog.Logger
	catalog  *palette.Catalog
	bindings BindingSource
	runner   CommandRunner
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRunner replaces the reload command runner.
func WithRunner(runner CommandRunner) Option {
	return func(r *Renderer) {
		if runner != nil {
			r.runner = runner
		}
	}
}

// NewRenderer creates a renderer resolving palette names through catalog.
func NewRenderer(catalog *palette.Catalog, bindings BindingSource, opts ...Option) *Renderer {
	r := &Renderer{
		logger:   slog.Default(),
		catalog:  catalog,
		bindings: bindings,
		runner:   ShellRunner{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplyTheme applies the catalog palette called name.
func (r *Renderer) ApplyTheme(name string) (*Report, error) {
	p, ok := r.catalog.Get(name)
	if !ok {
		return &Report{Palette: name}, errs.New(errs.PaletteNotFound, "Palette not found", name)
	}
	return r.Apply(p)
}

// ApplyThemeFromPath loads a palette file outside the catalog and applies
// it.
func (r *Renderer) ApplyThemeFromPath(path string) (*Report, error) {
	p, err := palette.LoadFile(path)
	if err != nil {
		return &Report{}, err
	}
	return r.Apply(p)
}

// Apply renders p into every enabled template in name order, writing each
// output and then running its reload command. The first template that
// fails to load, render or save stops the run; outputs already written
// stay on disk. Reload failures are reported as warnings.
func (r *Renderer) Apply(p *palette.Palette) (*Report, error) {
	report := &Report{Palette: p.Name}

	bindings := slices.Clone(r.bindings.Templates())
	slices.SortFunc(bindings, func(a, b config.TemplateBinding) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, b := range bindings {
		if !b.Enabled {
			r.logger.Debug("skipping disabled template", "template", b.Name)
			report.Skipped = append(report.Skipped, b.Name)
			continue
		}

		t := FromBinding(b)
		if err := r.applyOne(t, p); err != nil {
			return report, err
		}
		report.Applied = append(report.Applied, Applied{
			Name:       t.Name,
			OutputPath: t.OutputPath,
			Bytes:      len(t.Rendered()),
		})

		if t.ReloadCmd == "" {
			continue
		}
		r.logger.Debug("running reload command", "template", t.Name, "command", t.ReloadCmd)
		if err := r.runner.Run(t.ReloadCmd); err != nil {
			r.logger.Warn("reload command failed", "template", t.Name, "command", t.ReloadCmd, "error", err)
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: reload command failed: %v", t.Name, err))
		}
	}

	r.logger.Info("applied theme", "palette", p.Name, "templates", len(report.Applied))
	return report, nil
}

func (r *Renderer) applyOne(t *Template, p *palette.Palette) error {
	if err := t.Load(); err != nil {
		return err
	}
	if err := t.Apply(p); err != nil {
		return err
	}
	if err := t.Save(); err != nil {
		return err
	}
	r.logger.Debug("wrote template", "template", t.Name, "output", t.OutputPath)
	return nil
}
