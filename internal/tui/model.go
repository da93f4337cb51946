// Package tui provides the BubbleTea palette picker.
package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/clrsync/internal/adapter/output"
	"github.com/jmylchreest/clrsync/internal/color"
	"github.com/jmylchreest/clrsync/internal/palette"
	"github.com/jmylchreest/clrsync/internal/theme"
)

// Backend is what the picker acts on.
type Backend interface {
	// Palettes reloads and returns the catalog palettes sorted by name.
	Palettes() ([]*palette.Palette, error)

	// Apply applies the named palette.
	Apply(name string) (*theme.Report, error)

	// DefaultTheme returns the configured default palette name.
	DefaultTheme() string

	// SetDefaultTheme persists the default palette name.
	SetDefaultTheme(name string) error
}

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeHelp
)

// Model is the picker model.
type Model struct {
	backend Backend
	mode    Mode

	list list.Model
	help help.Model
	keys KeyMap

	palettes     []*palette.Palette
	defaultTheme string
	width        int
	height       int
	ready        bool

	statusMsg string
	statusErr bool
}

// paletteItem wraps a palette for the list component.
type paletteItem struct {
	palette   *palette.Palette
	isDefault bool
}

func (i paletteItem) Title() string {
	if i.isDefault {
		return i.palette.Name + " (default)"
	}
	return i.palette.Name
}

func (i paletteItem) Description() string {
	return output.Strip(i.palette, output.PreviewKeys)
}

func (i paletteItem) FilterValue() string {
	return i.palette.Name
}

// paletteDelegate renders the name line and a swatch strip per palette.
type paletteDelegate struct {
	list.DefaultDelegate
}

func newPaletteDelegate() paletteDelegate {
	return paletteDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

// Render renders a list item; the description is a swatch strip and is
// never truncated since its visible width is fixed.
func (d paletteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(paletteItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	titleStyle := d.Styles.NormalTitle
	descStyle := d.Styles.NormalDesc
	if index == m.Index() {
		titleStyle = d.Styles.SelectedTitle
		descStyle = d.Styles.SelectedDesc
	}

	fmt.Fprint(w, titleStyle.Render(pi.Title()))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(pi.Description()))
}

// New creates a picker model.
func New(backend Backend) Model {
	l := list.New(nil, newPaletteDelegate(), 0, 0)
	l.Title = "Palettes"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Model{
		backend: backend,
		mode:    ModeList,
		list:    l,
		help:    help.New(),
		keys:    DefaultKeyMap(),
	}
}

// Init loads the palettes.
func (m Model) Init() tea.Cmd {
	return m.loadPalettes
}

type palettesLoadedMsg struct {
	palettes []*palette.Palette
	err      error
}

type appliedMsg struct {
	name   string
	report *theme.Report
	err    error
}

type defaultSetMsg struct {
	name string
	err  error
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

func (m Model) loadPalettes() tea.Msg {
	palettes, err := m.backend.Palettes()
	return palettesLoadedMsg{palettes: palettes, err: err}
}

func (m Model) applyPalette(name string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.backend.Apply(name)
		return appliedMsg{name: name, report: report, err: err}
	}
}

func (m Model) setDefault(name string) tea.Cmd {
	return func() tea.Msg {
		return defaultSetMsg{name: name, err: m.backend.SetDefaultTheme(name)}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text)}
	}
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width/2, msg.Height-2)
		return m, nil

	case palettesLoadedMsg:
		if msg.err != nil {
			return m, setStatus("Failed to load palettes: "+msg.err.Error(), true)
		}
		m.palettes = msg.palettes
		m.defaultTheme = m.backend.DefaultTheme()
		m.list.SetItems(m.buildListItems())
		return m, nil

	case appliedMsg:
		if msg.err != nil {
			return m, setStatus("Failed to apply theme: "+msg.err.Error(), true)
		}
		text := "Applied theme " + msg.name
		if msg.report != nil && len(msg.report.Warnings) > 0 {
			text += fmt.Sprintf(" (%d warning(s))", len(msg.report.Warnings))
		}
		return m, setStatus(text, false)

	case defaultSetMsg:
		if msg.err != nil {
			return m, setStatus("Failed to set default: "+msg.err.Error(), true)
		}
		m.defaultTheme = msg.name
		m.list.SetItems(m.buildListItems())
		return m, setStatus("Default theme set to "+msg.name, false)

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied to clipboard", false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter input is open every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		return m, nil
	}

	item, selected := m.list.SelectedItem().(paletteItem)

	switch {
	case key.Matches(msg, m.keys.Apply):
		if selected {
			return m, m.applyPalette(item.palette.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.SetDefault):
		if selected {
			return m, m.setDefault(item.palette.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyPath):
		if selected && item.palette.FilePath != "" {
			return m, copyToClipboard(item.palette.FilePath)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyAccent):
		if selected {
			if c, ok := item.palette.Color("accent"); ok {
				return m, copyToClipboard(c.String())
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadPalettes
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// buildListItems creates list items from the loaded palettes.
func (m Model) buildListItems() []list.Item {
	items := make([]list.Item, len(m.palettes))
	for i, p := range m.palettes {
		items[i] = paletteItem{palette: p, isDefault: p.Name == m.defaultTheme}
	}
	return items
}

// View renders the picker.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.mode == ModeHelp {
		return m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press ? to return")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.renderPreview())

	var footer string
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		footer = statusStyle.Render(m.statusMsg)
	} else {
		footer = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	return body + "\n" + footer
}

// renderPreview renders every color of the selected palette.
func (m Model) renderPreview() string {
	item, ok := m.list.SelectedItem().(paletteItem)
	if !ok {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	s := headerStyle.Render(item.palette.Name) + "\n\n"

	maxRows := m.height - 4
	for i, k := range color.Keys {
		if maxRows > 0 && i >= maxRows {
			break
		}
		c, ok := item.palette.Color(k)
		if !ok {
			continue
		}
		s += output.Swatch(c) + " " + fmt.Sprintf("%-26s", k) + labelStyle.Render(c.HexAlpha()) + "\n"
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(s)
}

// Run starts the picker on the alternate screen and blocks until it exits.
func Run(backend Backend) error {
	p := tea.NewProgram(New(backend), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
