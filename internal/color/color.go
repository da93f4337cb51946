// Package color provides the packed RGBA color value used by palettes and
// the field formatter behind {key.field} template placeholders.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/clrsync/internal/errs"
)

// Color is a packed 32-bit RGBA value laid out as 0xRRGGBBAA.
type Color uint32

// RGB holds 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// RGBA holds 8-bit channels with alpha.
type RGBA struct {
	R, G, B, A uint8
}

// HSL holds hue in degrees [0,360) and saturation/lightness in [0,1].
type HSL struct {
	H, S, L float64
}

// HSLA is HSL with alpha in [0,1].
type HSLA struct {
	H, S, L, A float64
}

// Format fields understood by Color.Format.
const (
	FieldHex          = "hex"
	FieldHexStripped  = "hex_stripped"
	FieldHexa         = "hexa"
	FieldHexaStripped = "hexa_stripped"
	FieldR            = "r"
	FieldG            = "g"
	FieldB            = "b"
	FieldA            = "a"
	FieldRGB          = "rgb"
	FieldRGBA         = "rgba"
	FieldH            = "h"
	FieldS            = "s"
	FieldL            = "l"
	FieldHSL          = "hsl"
	FieldHSLA         = "hsla"
)

// Fields returns the format field vocabulary in documentation order.
func Fields() []string {
	return []string{
		FieldHex, FieldHexStripped, FieldHexa, FieldHexaStripped,
		FieldR, FieldG, FieldB, FieldA,
		FieldRGB, FieldRGBA,
		FieldH, FieldS, FieldL,
		FieldHSL, FieldHSLA,
	}
}

// New packs the given channels.
func New(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Hex returns the packed value.
func (c Color) Hex() uint32 {
	return uint32(c)
}

// RGB returns the color channels without alpha.
func (c Color) RGB() RGB {
	return RGB{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
	}
}

// RGBA returns all four channels.
func (c Color) RGBA() RGBA {
	return RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// HSL converts the color channels to hue/saturation/lightness.
func (c Color) HSL() HSL {
	rgb := c.RGB()
	h, s, l := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}.Hsl()
	return HSL{H: h, S: s, L: l}
}

// HSLA is HSL plus the alpha channel scaled to [0,1].
func (c Color) HSLA() HSLA {
	hsl := c.HSL()
	return HSLA{H: hsl.H, S: hsl.S, L: hsl.L, A: c.alpha()}
}

func (c Color) alpha() float64 {
	return float64(uint8(c)) / 255
}

// ParseHex parses "#RRGGBB" (alpha forced to 0xFF) or "#RRGGBBAA".
func ParseHex(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return 0, errs.New(errs.InvalidFormat, "Invalid hex color format", s)
	}

	digits := s[1:]
	if len(digits) != 6 && len(digits) != 8 {
		return 0, errs.New(errs.InvalidFormat, "Invalid hex color format", s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidFormat, err, "Invalid hex color format", s)
	}

	if len(digits) == 6 {
		return Color(uint32(v)<<8 | 0xFF), nil
	}
	return Color(uint32(v)), nil
}

// MustParseHex is ParseHex for compile-time constants; it panics on error.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns "#RRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c)>>8)
}

// HexAlpha returns "#RRGGBBAA".
func (c Color) HexAlpha() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// Format renders the color for one placeholder field. Unknown fields
// return an InvalidFormat error.
func (c Color) Format(field string) (string, error) {
	switch field {
	case FieldHex:
		return c.String(), nil
	case FieldHexStripped:
		return c.String()[1:], nil
	case FieldHexa:
		return c.HexAlpha(), nil
	case FieldHexaStripped:
		return c.HexAlpha()[1:], nil
	}

	rgba := c.RGBA()
	switch field {
	case FieldR:
		return strconv.Itoa(int(rgba.R)), nil
	case FieldG:
		return strconv.Itoa(int(rgba.G)), nil
	case FieldB:
		return strconv.Itoa(int(rgba.B)), nil
	case FieldA:
		return fmt.Sprintf("%.2f", c.alpha()), nil
	case FieldRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", rgba.R, rgba.G, rgba.B), nil
	case FieldRGBA:
		return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", rgba.R, rgba.G, rgba.B, c.alpha()), nil
	}

	hsla := c.HSLA()
	switch field {
	case FieldH:
		return fmt.Sprintf("%.0f", hsla.H), nil
	case FieldS:
		return fmt.Sprintf("%.2f", hsla.S), nil
	case FieldL:
		return fmt.Sprintf("%.2f", hsla.L), nil
	case FieldHSL:
		return fmt.Sprintf("hsl(%.0f,%.2f,%.2f)", hsla.H, hsla.S, hsla.L), nil
	case FieldHSLA:
		return fmt.Sprintf("hsla(%.0f,%.2f,%.2f,%.2f)", hsla.H, hsla.S, hsla.L, hsla.A), nil
	}

	return "", errs.New(errs.InvalidFormat, "Unknown color format", field)
}
