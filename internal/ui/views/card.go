package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"picgrid/internal/domain"
	"picgrid/internal/gallery"
)

// CardRenderer draws single gallery cards
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a new card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// Render draws card in a box of exactly size cells
func (cr *CardRenderer) Render(card gallery.Card, mode domain.ViewMode, size, thumb gallery.CardSize, focused bool) string {
	box := cr.styles.Card
	if focused {
		box = cr.styles.CardFocused
	}
	innerW := size.Width - 2
	innerH := size.Height - 2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	picture := cr.thumbnail(card, thumb)
	var body string
	if mode == domain.ViewList {
		body = cr.listBody(card, picture, innerW, thumb)
	} else {
		body = cr.gridBody(card, picture, innerW)
	}

	return box.
		Width(innerW).
		Height(innerH).
		MaxHeight(size.Height).
		Render(body)
}

// thumbnail returns the picture area, a loading filler while the image is
// on its way
func (cr *CardRenderer) thumbnail(card gallery.Card, thumb gallery.CardSize) string {
	content := card.Thumb
	switch card.State {
	case gallery.CardPending, gallery.CardLoading:
		content = cr.styles.Dim.Render("loading…")
	case gallery.CardFailed:
		content = cr.styles.StatusWarning.Render(content)
	}
	return lipgloss.Place(thumb.Width, thumb.Height, lipgloss.Center, lipgloss.Center, content)
}

func (cr *CardRenderer) gridBody(card gallery.Card, picture string, width int) string {
	title := cr.styles.CardTitle.Render(truncate(card.Image.Title(), width))
	meta := cr.styles.CardMeta.Render(truncate(metaLine(card.Image), width))
	return lipgloss.JoinVertical(lipgloss.Left, picture, title, meta)
}

func (cr *CardRenderer) listBody(card gallery.Card, picture string, width int, thumb gallery.CardSize) string {
	textW := width - thumb.Width - 2
	if textW < 1 {
		return picture
	}
	img := card.Image
	lines := []string{
		cr.styles.CardTitle.Render(truncate(img.Title(), textW)),
		cr.styles.CardMeta.Render(truncate(metaLine(img), textW)),
	}
	if img.HasDescription() {
		lines = append(lines, truncate(img.DescriptionOr(""), textW))
	} else {
		lines = append(lines, cr.styles.Dim.Render("No description"))
	}
	if len(img.Tags) > 0 {
		lines = append(lines, cr.styles.CardTag.Render(truncate(tagLine(img.Tags), textW)))
	}
	text := lipgloss.NewStyle().Width(textW).MaxHeight(thumb.Height).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, picture, "  ", text)
}

func metaLine(img domain.Image) string {
	parts := make([]string, 0, 2)
	if img.Category != "" {
		parts = append(parts, img.Category)
	}
	if img.DateAdded != "" {
		parts = append(parts, img.DateAdded)
	}
	return strings.Join(parts, " · ")
}

func tagLine(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
