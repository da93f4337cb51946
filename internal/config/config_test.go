package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/clrsync/internal/errs"
)

const sampleConfig = `
[general]
default_theme = "dark"
palettes_path = "~/palettes"
font = "JetBrains Mono"

[templates.kitty]
input_path = "/tmp/kitty.conf.in"
output_path = "/tmp/kitty.conf"
enabled = true
reload_cmd = "pkill -USR1 kitty"

[templates.alacritty]
input_path = "/tmp/alacritty.toml.in"
output_path = "/tmp/alacritty.toml"
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpen_ReadsPrimary(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)

	s, err := Open(path, Options{})
	require.NoError(t, err)

	assert.False(t, s.ShadowActive())
	assert.Equal(t, "dark", s.DefaultTheme())
	assert.Equal(t, "JetBrains Mono", s.Font())
	assert.Equal(t, uint32(DefaultFontSize), s.FontSize())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "palettes"), s.PalettesPath())
}

func TestOpen_MissingPrimaryStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	s, err := Open(path, Options{})
	require.NoError(t, err)

	assert.Empty(t, s.DefaultTheme())
	assert.Equal(t, filepath.Join(dir, "nested", "palettes"), s.PalettesPath())
	assert.Empty(t, s.Templates())

	require.NoError(t, s.SetDefaultTheme("light"))
	assert.FileExists(t, path)
}

func TestOpen_InvalidTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[general\ndefault_theme = ")

	_, err := Open(path, Options{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ConfigInvalid))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", Options{})
	assert.True(t, errs.Is(err, errs.ConfigMissing))
}

func TestSet_WritablePrimary(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sampleConfig)

	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.SetDefaultTheme("light"))
	require.NoError(t, s.SetFontSize(18))

	assert.NoFileExists(t, ShadowPath(path))

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "light", reopened.DefaultTheme())
	assert.Equal(t, uint32(18), reopened.FontSize())
}

func TestSet_SymlinkedPrimary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dotfiles"), 0755))
	target := writeConfig(t, filepath.Join(dir, "dotfiles"), sampleConfig)
	link := filepath.Join(dir, "cfg", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link))

	s, err := Open(link, Options{})
	require.NoError(t, err)
	assert.False(t, s.ShadowActive())
	require.NoError(t, s.SetFont("Iosevka"))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	fromTarget, err := Open(target, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Iosevka", fromTarget.Font())
	assert.Equal(t, "dark", fromTarget.DefaultTheme())
}

func TestSet_ReadOnlyPrimaryUsesShadow(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sampleConfig)
	require.NoError(t, os.Chmod(path, 0444))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.True(t, s.ShadowActive())
	assert.Equal(t, filepath.Join(dir, "config-temp.toml"), s.ShadowPath())

	require.NoError(t, s.SetDefaultTheme("light"))
	assert.Equal(t, "light", s.DefaultTheme())
	assert.Equal(t, "JetBrains Mono", s.Font())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.FileExists(t, s.ShadowPath())

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "light", reopened.DefaultTheme())
}

func TestShadowPath(t *testing.T) {
	assert.Equal(t, "/etc/clrsync/config-temp.toml", ShadowPath("/etc/clrsync/config.toml"))
	assert.Equal(t, "/x/settings-temp", ShadowPath("/x/settings"))
}

func TestTemplates(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	s, err := Open(path, Options{})
	require.NoError(t, err)

	got := s.Templates()
	require.Len(t, got, 2)
	assert.Equal(t, "alacritty", got[0].Name)
	assert.False(t, got[0].Enabled)
	assert.Equal(t, TemplateBinding{
		Name:       "kitty",
		InputPath:  "/tmp/kitty.conf.in",
		OutputPath: "/tmp/kitty.conf",
		Enabled:    true,
		ReloadCmd:  "pkill -USR1 kitty",
	}, got[1])

	_, err = s.Template("missing")
	assert.True(t, errs.Is(err, errs.TemplateNotFound))
}

func TestUpdateTemplate(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	s, err := Open(path, Options{})
	require.NoError(t, err)

	b := TemplateBinding{
		Name:       "foot",
		InputPath:  "/tmp/foot.ini.in",
		OutputPath: "/tmp/foot.ini",
		Enabled:    true,
	}
	require.NoError(t, s.UpdateTemplate(b))

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	got, err := reopened.Template("foot")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	assert.True(t, errs.Is(s.UpdateTemplate(TemplateBinding{}), errs.InvalidArg))
}

func TestUpdateTemplate_RejectsDottedName(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	s, err := Open(path, Options{})
	require.NoError(t, err)
	before := s.Templates()

	err = s.UpdateTemplate(TemplateBinding{
		Name:       "kitty.conf",
		InputPath:  "/tmp/in",
		OutputPath: "/tmp/out",
		Enabled:    true,
	})
	assert.True(t, errs.Is(err, errs.InvalidArg))

	assert.Equal(t, before, s.Templates())
	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, before, reopened.Templates())
}

func TestTemplates_ShadowOverlay(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	require.NoError(t, os.Chmod(path, 0444))

	s, err := Open(path, Options{})
	require.NoError(t, err)

	kitty, err := s.Template("kitty")
	require.NoError(t, err)
	kitty.Enabled = false
	kitty.OutputPath = "/tmp/kitty-alt.conf"
	require.NoError(t, s.UpdateTemplate(kitty))
	require.NoError(t, s.UpdateTemplate(TemplateBinding{Name: "foot", Enabled: true}))

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	names := make([]string, 0)
	for _, b := range reopened.Templates() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"alacritty", "foot", "kitty"}, names)

	got, err := reopened.Template("kitty")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kitty-alt.conf", got.OutputPath)
	// The shadow's false overrides the primary's true.
	assert.False(t, got.Enabled)
}

func TestRemoveTemplate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kitty.conf.in")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))
	path := writeConfig(t, dir, "[templates.kitty]\ninput_path = \""+src+"\"\noutput_path = \"/tmp/k\"\nenabled = true\n")

	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.RemoveTemplate("kitty", true))

	assert.NoFileExists(t, src)
	assert.Empty(t, s.Templates())
	assert.True(t, errs.Is(s.RemoveTemplate("kitty", false), errs.TemplateNotFound))
}

func TestRemoveTemplate_ReadOnlyPrimary(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	require.NoError(t, os.Chmod(path, 0444))

	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.RemoveTemplate("kitty", false))

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	_, err = reopened.Template("kitty")
	assert.True(t, errs.Is(err, errs.TemplateNotFound))
	_, err = reopened.Template("alacritty")
	assert.NoError(t, err)

	// Re-adding clears the removal marker.
	require.NoError(t, reopened.UpdateTemplate(TemplateBinding{Name: "kitty", Enabled: true}))
	_, err = reopened.Template("kitty")
	assert.NoError(t, err)
}

func TestSeedUserDir(t *testing.T) {
	system := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(system, "config.toml"), []byte("[general]\ndefault_theme = \"cursed\"\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(system, "templates", "kitty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(system, "templates", "kitty", "kitty.conf"), []byte("bg {background}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(system, "palettes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(system, "palettes", "cursed.toml"), []byte("[general]\nname = \"cursed\"\n"), 0644))

	user := filepath.Join(t.TempDir(), "clrsync")
	require.NoError(t, SeedUserDir(system, user))

	seeded := filepath.Join(user, "templates", "kitty", "kitty.conf")
	assert.FileExists(t, filepath.Join(user, "config.toml"))
	assert.FileExists(t, filepath.Join(user, "palettes", "cursed.toml"))
	assert.FileExists(t, seeded)

	// User edits survive a second seed.
	require.NoError(t, os.WriteFile(seeded, []byte("edited"), 0644))
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(seeded, old, old))

	require.NoError(t, SeedUserDir(system, user))

	data, err := os.ReadFile(seeded)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
	info, err := os.Stat(seeded)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))
}

func TestOpen_SeedsFromSystemDir(t *testing.T) {
	system := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(system, "config.toml"), []byte("[general]\ndefault_theme = \"cursed\"\n"), 0644))

	path := filepath.Join(t.TempDir(), "clrsync", "config.toml")
	s, err := Open(path, Options{SystemDir: system})
	require.NoError(t, err)
	assert.Equal(t, "cursed", s.DefaultTheme())
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvDataDir, "/data")

	assert.Equal(t, "/cfg/clrsync", UserConfigDir())
	assert.Equal(t, "/cfg/clrsync/config.toml", DefaultConfigPath())
	assert.Equal(t, "/state/clrsync/history.jsonl", HistoryPath())
	assert.Equal(t, "/data", DataDir())

	t.Setenv(EnvConfigPath, "/elsewhere/c.toml")
	assert.Equal(t, "/elsewhere/c.toml", DefaultConfigPath())
}
