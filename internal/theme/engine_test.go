package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/errs"
	"github.com/jmylchreest/clrsync/internal/palette"
)

func testPalette() *palette.Palette {
	p := palette.New("test")
	p.SetColor("accent", 0xFF0000FF)
	p.SetColor("accent_alt", 0x33669980)
	p.SetColor("background", 0x111111FF)
	return p
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"field placeholders", "color: {accent.hex} alpha: {accent.a}", "color: #FF0000 alpha: 1.00"},
		{"bare key", "bg={background}", "bg=#111111"},
		{"similar key names", "{accent} {accent_alt} {accent_alt.hexa}", "#FF0000 #336699 #33669980"},
		{"missing key left literal", "{nope} {nope.hex}", "{nope} {nope.hex}"},
		{"unterminated placeholder", "{accent.hex} {accent.r", "#FF0000 {accent.r"},
		{"repeated placeholders", "{accent.r},{accent.r},{accent.g}", "255,255,0"},
		{"hsla", "{accent_alt.hsla}", "hsla(210,0.50,0.40,0.50)"},
		{"no placeholders", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.in, testPalette())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_UnknownField(t *testing.T) {
	_, err := Render("{accent.bogus}", testPalette())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidFormat))
}

func TestRender_Idempotent(t *testing.T) {
	p := palette.NewDefault("cursed")
	in := "fg {foreground.rgb}\nbg {background}\nsel {accent.hsl} {missing.hex}\n"

	first, err := Render(in, p)
	require.NoError(t, err)
	second, err := Render(in, p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_EveryField(t *testing.T) {
	p := palette.New("one")
	p.SetColor("accent", 0x33669980)

	for _, field := range color.Fields() {
		want, err := color.Color(0x33669980).Format(field)
		require.NoError(t, err)

		got, err := Render("{accent."+field+"}", p)
		require.NoError(t, err, field)
		assert.Equal(t, want, got, field)
	}
}
