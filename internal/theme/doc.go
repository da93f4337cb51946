// Package theme renders palettes into template files.
//
// A template is any text file containing placeholders of the form {key}
// or {key.field}, where key is a color key from the palette and field is
// one of the color formats (hex, rgb, hsla, ...). The Renderer applies a
// palette to every enabled template binding from the configuration,
// writes the results, and runs each template's reload command.
//
// The Watcher re-runs a callback when palette or template sources change.
package theme
