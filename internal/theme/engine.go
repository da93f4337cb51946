package theme

import (
	"strings"

	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/palette"
)

// Render expands the placeholders in text using p. {key} becomes the
// color's #RRGGBB form and {key.field} the named format. Placeholders
// naming keys the palette does not hold are left as they are. An unknown
// field on a known key is an error.
func Render(text string, p *palette.Palette) (string, error) {
	for _, key := range p.Keys() {
		c := p.Colors[key]

		text = strings.ReplaceAll(text, "{"+key+"}", c.String())

		var err error
		text, err = expandFields(text, key, c)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// expandFields replaces every {key.field} in text. An opening {key. with
// no closing brace ends the scan and is kept verbatim.
func expandFields(text, key string, c color.Color) (string, error) {
	prefix := "{" + key + "."
	pos := 0
	for {
		i := strings.Index(text[pos:], prefix)
		if i < 0 {
			return text, nil
		}
		start := pos + i
		fieldStart := start + len(prefix)

		end := strings.IndexByte(text[fieldStart:], '}')
		if end < 0 {
			return text, nil
		}
		fieldEnd := fieldStart + end

		value, err := c.Format(text[fieldStart:fieldEnd])
		if err != nil {
			return "", err
		}

		text = text[:start] + value + text[fieldEnd+1:]
		pos = start + len(value)
	}
}
