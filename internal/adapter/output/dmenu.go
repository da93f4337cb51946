package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/clrsync/internal/palette"
)

// DmenuFormatter writes one line per item for dmenu/rofi/fuzzel pickers.
// The selected line can be passed straight back to "clrsync apply".
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// FormatPalettes writes palette names, one per line.
func (f *DmenuFormatter) FormatPalettes(w io.Writer, palettes []*palette.Palette) error {
	for i, p := range palettes {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, p)); err != nil {
			return err
		}
	}
	return nil
}

// FormatPalette writes "key #RRGGBBAA" lines.
func (f *DmenuFormatter) FormatPalette(w io.Writer, p *palette.Palette) error {
	for _, k := range orderedKeys(p) {
		if _, err := fmt.Fprintf(w, "%s %s\n", k, p.Colors[k].HexAlpha()); err != nil {
			return err
		}
	}
	return nil
}

// FormatKeys writes one key per line.
func (f *DmenuFormatter) FormatKeys(w io.Writer, keys []string) error {
	_, err := io.WriteString(w, strings.Join(keys, "\n")+"\n")
	return err
}

func (f *DmenuFormatter) formatLine(index int, p *palette.Palette) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{
			Index:   index,
			Palette: p,
			Default: f.opts.DefaultName != "" && p.Name == f.opts.DefaultName,
		}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}
	return p.Name
}

// templateData provides data for custom templates.
type templateData struct {
	Index   int
	Palette *palette.Palette
	Default bool
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"color": func(p *palette.Palette, key, field string) string {
			c, ok := p.Color(key)
			if !ok {
				return ""
			}
			s, err := c.Format(field)
			if err != nil {
				return ""
			}
			return s
		},
	}
}
