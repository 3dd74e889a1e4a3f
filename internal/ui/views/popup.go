package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup overlay on top of main content. The
// content around the popup stays visible but desaturated.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	popupLines := strings.Split(styledPopup, "\n")
	if len(popupLines) > height {
		popupLines = popupLines[:height]
	}
	modalW := lipgloss.Width(styledPopup)
	if modalW > width {
		modalW = width
	}
	x := (width - modalW) / 2
	y := (height - len(popupLines)) / 2

	base := strings.Split(pr.desaturate(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	for i, line := range popupLines {
		row := y + i
		if row < 0 || row >= len(base) {
			continue
		}
		line = ansi.Truncate(line, modalW, "")
		under := base[row]
		if pad := width - ansi.StringWidth(under); pad > 0 {
			under += strings.Repeat(" ", pad)
		}
		left := ansi.Truncate(under, x, "")
		right := ansi.TruncateLeft(under, x+modalW, "")
		base[row] = left + line + right
	}
	return strings.Join(base[:height], "\n")
}

// desaturate strips ANSI styles and recolors text with the backdrop color
func (pr *PopupRenderer) desaturate(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = pr.styles.Backdrop.Render(line)
	}
	return strings.Join(lines, "\n")
}
