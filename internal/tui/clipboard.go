package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

var errNoClipboard = errors.New("no clipboard command available")

// clipboardTool is a clipboard writer reading from stdin. display names the
// environment variable that must be set for it to be usable, if any.
type clipboardTool struct {
	display string
	argv    []string
}

var clipboardTools = []clipboardTool{
	{display: "WAYLAND_DISPLAY", argv: []string{"wl-copy"}},
	{display: "DISPLAY", argv: []string{"xclip", "-selection", "clipboard"}},
	{display: "DISPLAY", argv: []string{"xsel", "--clipboard", "--input"}},
	{argv: []string{"pbcopy"}},
}

// copyText writes text to the system clipboard.
func copyText(text string) error {
	argv := clipboardCommand(os.Getenv, exec.LookPath)
	if argv == nil {
		return errNoClipboard
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdin = strings.NewReader(text)
	return c.Run()
}

// clipboardCommand returns the first tool whose display is available and
// whose binary is on PATH.
func clipboardCommand(getenv func(string) string, lookPath func(string) (string, error)) []string {
	for _, tool := range clipboardTools {
		if tool.display != "" && getenv(tool.display) == "" {
			continue
		}
		if _, err := lookPath(tool.argv[0]); err == nil {
			return tool.argv
		}
	}
	return nil
}
