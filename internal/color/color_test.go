package color

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/clrsync/internal/errs"
)

func TestColor_Channels(t *testing.T) {
	c := Color(0x11223344)

	assert.Equal(t, uint32(0x11223344), c.Hex())
	assert.Equal(t, RGB{R: 0x11, G: 0x22, B: 0x33}, c.RGB())
	assert.Equal(t, RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c.RGBA())
	assert.Equal(t, c, New(0x11, 0x22, 0x33, 0x44))
}

func TestColor_HSL(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		h     float64
		s     float64
		l     float64
	}{
		{"red", 0xFF0000FF, 0, 1, 0.5},
		{"green", 0x00FF00FF, 120, 1, 0.5},
		{"blue", 0x0000FFFF, 240, 1, 0.5},
		{"grey", 0x808080FF, 0, 0, 128.0 / 255},
		{"steel", 0x336699FF, 210, 0.5, 0.4},
		{"magenta_wraps", 0xFF00FFFF, 300, 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hsl := tt.color.HSL()
			assert.InDelta(t, tt.h, hsl.H, 0.001)
			assert.InDelta(t, tt.s, hsl.S, 0.001)
			assert.InDelta(t, tt.l, hsl.L, 0.001)
		})
	}
}

func TestColor_Format(t *testing.T) {
	red := Color(0xFF0000FF)
	translucent := Color(0x33669980)

	tests := []struct {
		name     string
		color    Color
		field    string
		expected string
	}{
		{"hex", red, "hex", "#FF0000"},
		{"hex_stripped", red, "hex_stripped", "FF0000"},
		{"hexa", translucent, "hexa", "#33669980"},
		{"hexa_stripped", translucent, "hexa_stripped", "33669980"},
		{"r", translucent, "r", "51"},
		{"g", translucent, "g", "102"},
		{"b", translucent, "b", "153"},
		{"a_opaque", red, "a", "1.00"},
		{"a_half", translucent, "a", "0.50"},
		{"rgb", translucent, "rgb", "rgb(51,102,153)"},
		{"rgba", translucent, "rgba", "rgba(51,102,153,0.50)"},
		{"h", translucent, "h", "210"},
		{"s", translucent, "s", "0.50"},
		{"l", translucent, "l", "0.40"},
		{"hsl", red, "hsl", "hsl(0,1.00,0.50)"},
		{"hsla", translucent, "hsla", "hsla(210,0.50,0.40,0.50)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.color.Format(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestColor_FormatUnknownField(t *testing.T) {
	_, err := Color(0xFF0000FF).Format("cmyk")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidFormat))
	assert.Contains(t, err.Error(), "cmyk")
}

func TestColor_FormatCoversVocabulary(t *testing.T) {
	c := Color(0x9a8652ff)
	for _, field := range Fields() {
		out, err := c.Format(field)
		require.NoError(t, err, field)
		assert.NotContains(t, out, "{", field)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Color
		wantErr  bool
	}{
		{"rgb_forces_alpha", "#FF0000", 0xFF0000FF, false},
		{"rgba", "#FF000080", 0xFF000080, false},
		{"lowercase", "#9a8652", 0x9A8652FF, false},
		{"missing_hash", "FF0000", 0, true},
		{"too_short", "#FFF", 0, true},
		{"seven_digits", "#FF00000", 0, true},
		{"not_hex", "#GGGGGG", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.InvalidFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []uint32{0, 0xFFFFFFFF, 0x12345678, 0x000000FF}
	for i := 0; i < 500; i++ {
		values = append(values, rng.Uint32())
	}

	for _, v := range values {
		c := Color(v)
		assert.Equal(t, v, c.Hex())

		withAlpha, err := ParseHex(c.HexAlpha())
		require.NoError(t, err)
		assert.Equal(t, c, withAlpha)

		opaque, err := ParseHex(c.String())
		require.NoError(t, err)
		assert.Equal(t, Color(v|0xFF), opaque)
	}
}

func TestRegistry(t *testing.T) {
	assert.Len(t, Keys, 50)
	for _, k := range Keys {
		_, ok := Defaults[k]
		assert.True(t, ok, "missing default for %s", k)
		assert.True(t, IsKey(k))
	}
	assert.Len(t, Defaults, len(Keys))
	assert.False(t, IsKey("nope"))
}
