package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{keys: newKeyMap()}
}

var helpSections = []string{"Navigation", "Search & Filter", "View", "Viewer"}

// RenderHelpContentPlain generates help content with colors for pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("picgrid Help"))
	help.WriteString("\n")

	for i, group := range r.keys.FullHelp() {
		help.WriteString(sectionStyle.Render(helpSections[i]))
		help.WriteString("\n")
		for _, b := range group {
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(padRight(b.Help().Key, 12)), descStyle.Render(b.Help().Desc)))
		}
		help.WriteString("\n")
	}

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Search matches filename, description and tags. Every word must match."))
	help.WriteString("\n")
	help.WriteString(filterStyle.Render("  Swipe in the viewer by dragging with the mouse; drag down to close."))

	return help.String()
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configurePagerKeys(&config)

	root.SetConfig(config)
	return root.Run()
}

// configurePagerKeys adds vim-style movement and lets ? close the pager
func configurePagerKeys(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["exit"] = []string{"Escape", "q", "?"}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+N", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+P", "k"}
	config.Keybind["top"] = []string{"Home", "g"}
	config.Keybind["bottom"] = []string{"End", "G"}
}

// showHelp returns a command that shows help using ov pager
func (m *Model) showHelp() tea.Cmd {
	content := NewHelpRenderer().RenderHelpContentPlain()
	ops := NewHelpOps(m.program)
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

// shortHelp renders the one-line key hints for the current mode
func (m *Model) shortHelp() string {
	if m.viewer != nil {
		return m.help.ShortHelpView(viewerKeys{m.keys}.ShortHelp())
	}
	if m.inputHandler.InTextInput() {
		return m.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		})
	}
	return m.help.View(m.keys)
}
