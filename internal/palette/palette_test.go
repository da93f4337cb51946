package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/errs"
)

func writePalette(t *testing.T, dir, file, content string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_FallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writePalette(t, dir, "partial.toml", `
[general]
name = "partial"

[colors]
accent = "#FF0000"
background = "#00000080"
not_a_key = "#123456"
`)

	p, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "partial", p.Name)
	assert.Equal(t, path, p.FilePath)
	assert.Len(t, p.Colors, len(color.Keys))
	assert.Equal(t, color.Color(0xFF0000FF), p.Colors["accent"])
	assert.Equal(t, color.Color(0x00000080), p.Colors["background"])
	assert.Equal(t, color.Defaults["base08"], p.Colors["base08"])
	_, ok := p.Color("not_a_key")
	assert.False(t, ok)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.toml"))
	assert.True(t, errs.Is(err, errs.FileNotFound))

	corrupt := writePalette(t, dir, "corrupt.toml", "[general\nname = ")
	_, err = LoadFile(corrupt)
	assert.True(t, errs.Is(err, errs.PaletteLoadFailed))

	badColor := writePalette(t, dir, "bad.toml", "[colors]\naccent = \"red\"\n")
	_, err = LoadFile(badColor)
	assert.True(t, errs.Is(err, errs.PaletteLoadFailed))
	assert.ErrorIs(t, err, errs.New(errs.InvalidFormat, "", ""))
}

func TestLoadFile_NameFromStem(t *testing.T) {
	path := writePalette(t, t.TempDir(), "unnamed.toml", "[colors]\naccent = \"#010203\"\n")

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "unnamed", p.Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := New("roundtrip")
	p.SetColor("accent", 0x12345678)
	p.SetColor("base0F", 0xABCDEF01)
	p.SetColor("background", 0x000000FF)

	path := filepath.Join(t.TempDir(), "sub", "roundtrip.toml")
	require.NoError(t, SaveFile(p, path))
	assert.Equal(t, path, p.FilePath)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	for _, key := range p.Keys() {
		assert.Equal(t, p.Colors[key], loaded.Colors[key], key)
	}
	assert.Equal(t, color.Defaults["foreground"], loaded.Colors["foreground"])
}

func TestSaveFile_RequiresName(t *testing.T) {
	p := New("")
	err := SaveFile(p, filepath.Join(t.TempDir(), "x.toml"))
	assert.True(t, errs.Is(err, errs.InvalidArg))
	assert.Empty(t, p.FilePath)
}

func TestSaveFile_FailureLeavesFilePathEmpty(t *testing.T) {
	dir := t.TempDir()
	blocker := writePalette(t, dir, "blocker", "")

	p := NewDefault("blocked")
	err := SaveFile(p, filepath.Join(blocker, "blocked.toml"))
	assert.True(t, errs.Is(err, errs.DirCreateFailed))
	assert.Empty(t, p.FilePath)
}

func TestGetEmbedded(t *testing.T) {
	assert.Contains(t, ListEmbedded(), DefaultPaletteName)

	p, err := GetEmbedded(DefaultPaletteName)
	require.NoError(t, err)
	assert.Equal(t, DefaultPaletteName, p.Name)
	assert.Empty(t, p.FilePath)
	assert.Equal(t, color.Defaults["accent"], p.Colors["accent"])

	_, err = GetEmbedded("nope")
	assert.True(t, errs.Is(err, errs.ResourceMissing))
}

func TestPalette_Clone(t *testing.T) {
	p := NewDefault("orig")
	clone := p.Clone()
	clone.SetColor("accent", 0x000000FF)
	clone.Name = "copy"

	assert.Equal(t, "orig", p.Name)
	assert.Equal(t, color.Defaults["accent"], p.Colors["accent"])
}
