package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/clrsync/internal/config"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/palette"
)

type staticBindings []config.TemplateBinding

func (s staticBindings) Templates() []config.TemplateBinding {
	return s
}

type fakeRunner struct {
	commands []string
	fail     map[string]error
}

func (f *fakeRunner) Run(command string) error {
	f.commands = append(f.commands, command)
	return f.fail[command]
}

func newTestRenderer(t *testing.T, bindings staticBindings, runner CommandRunner) *Renderer {
	t.Helper()
	catalog := palette.NewCatalog(nil)
	catalog.Add(testPalette())
	return NewRenderer(catalog, bindings, WithRunner(runner))
}

func TestApplyTheme_WritesEnabledTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.in"), "a {accent}")
	writeFile(t, filepath.Join(dir, "b.in"), "b {background.rgb}")

	bindings := staticBindings{
		{Name: "b", InputPath: filepath.Join(dir, "b.in"), OutputPath: filepath.Join(dir, "out", "b"), Enabled: true},
		{Name: "off", InputPath: filepath.Join(dir, "missing.in"), OutputPath: filepath.Join(dir, "out", "off"), Enabled: false},
		{Name: "a", InputPath: filepath.Join(dir, "a.in"), OutputPath: filepath.Join(dir, "out", "a"), Enabled: true},
	}
	runner := &fakeRunner{}

	report, err := newTestRenderer(t, bindings, runner).ApplyTheme("test")
	require.NoError(t, err)

	assert.Equal(t, "test", report.Palette)
	require.Len(t, report.Applied, 2)
	assert.Equal(t, "a", report.Applied[0].Name)
	assert.Equal(t, len("a #FF0000"), report.Applied[0].Bytes)
	assert.Equal(t, "b", report.Applied[1].Name)
	assert.Equal(t, []string{"off"}, report.Skipped)
	assert.Empty(t, runner.commands)

	data, err := os.ReadFile(filepath.Join(dir, "out", "b"))
	require.NoError(t, err)
	assert.Equal(t, "b rgb(17,17,17)", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "out", "off"))
}

func TestApplyTheme_FirstFailureAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.in"), "{accent}")
	writeFile(t, filepath.Join(dir, "b.in"), "{accent}")
	blocker := writeFile(t, filepath.Join(dir, "blocker"), "")

	bindings := staticBindings{
		{Name: "a", InputPath: filepath.Join(dir, "a.in"), OutputPath: filepath.Join(blocker, "sub", "a.conf"), Enabled: true, ReloadCmd: "reload-a"},
		{Name: "b", InputPath: filepath.Join(dir, "b.in"), OutputPath: filepath.Join(dir, "out", "b.conf"), Enabled: true, ReloadCmd: "reload-b"},
	}
	runner := &fakeRunner{}

	report, err := newTestRenderer(t, bindings, runner).ApplyTheme("test")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.DirCreateFailed))
	assert.Empty(t, report.Applied)
	assert.Empty(t, runner.commands)
	assert.NoFileExists(t, filepath.Join(dir, "out", "b.conf"))
}

func TestApplyTheme_EarlierOutputsRemain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.in"), "{accent}")
	writeFile(t, filepath.Join(dir, "b.in"), "{accent.unknown}")

	bindings := staticBindings{
		{Name: "a", InputPath: filepath.Join(dir, "a.in"), OutputPath: filepath.Join(dir, "a.out"), Enabled: true},
		{Name: "b", InputPath: filepath.Join(dir, "b.in"), OutputPath: filepath.Join(dir, "b.out"), Enabled: true},
	}

	report, err := newTestRenderer(t, bindings, &fakeRunner{}).ApplyTheme("test")
	assert.True(t, errs.Is(err, errs.TemplateApplyFailed))
	require.Len(t, report.Applied, 1)
	assert.FileExists(t, filepath.Join(dir, "a.out"))
	assert.NoFileExists(t, filepath.Join(dir, "b.out"))
}

func TestApplyTheme_ReloadFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.in"), "{accent}")
	writeFile(t, filepath.Join(dir, "b.in"), "{accent}")

	bindings := staticBindings{
		{Name: "a", InputPath: filepath.Join(dir, "a.in"), OutputPath: filepath.Join(dir, "a.out"), Enabled: true, ReloadCmd: "reload-a"},
		{Name: "b", InputPath: filepath.Join(dir, "b.in"), OutputPath: filepath.Join(dir, "b.out"), Enabled: true, ReloadCmd: "reload-b"},
	}
	runner := &fakeRunner{fail: map[string]error{"reload-a": errors.New("exit status 1")}}

	report, err := newTestRenderer(t, bindings, runner).ApplyTheme("test")
	require.NoError(t, err)
	assert.Equal(t, []string{"reload-a", "reload-b"}, runner.commands)
	assert.Len(t, report.Applied, 2)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "exit status 1")
}

func TestApplyTheme_PaletteNotFound(t *testing.T) {
	_, err := newTestRenderer(t, nil, &fakeRunner{}).ApplyTheme("absent")
	assert.True(t, errs.Is(err, errs.PaletteNotFound))
}

func TestApplyThemeFromPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.in"), "{accent}")
	paletteFile := writeFile(t, filepath.Join(dir, "adhoc.toml"), "[general]\nname = \"adhoc\"\n[colors]\naccent = \"#00FF00\"\n")

	bindings := staticBindings{
		{Name: "a", InputPath: filepath.Join(dir, "a.in"), OutputPath: filepath.Join(dir, "a.out"), Enabled: true},
	}
	r := newTestRenderer(t, bindings, &fakeRunner{})

	report, err := r.ApplyThemeFromPath(paletteFile)
	require.NoError(t, err)
	assert.Equal(t, "adhoc", report.Palette)

	data, err := os.ReadFile(filepath.Join(dir, "a.out"))
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", string(data))

	_, err = r.ApplyThemeFromPath(filepath.Join(dir, "absent.toml"))
	assert.True(t, errs.Is(err, errs.FileNotFound))

	broken := writeFile(t, filepath.Join(dir, "broken.toml"), "[general\n")
	_, err = r.ApplyThemeFromPath(broken)
	assert.True(t, errs.Is(err, errs.PaletteLoadFailed))
}

func TestShellRunner(t *testing.T) {
	assert.NoError(t, ShellRunner{}.Run("true"))

	err := ShellRunner{}.Run("echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
