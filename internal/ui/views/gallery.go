package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"picgrid/internal/domain"
	"picgrid/internal/gallery"
)

// GalleryRenderer is the terminal side of the gallery. It keeps its own copy
// of the cards and caches each drawn card until the card or theme changes.
type GalleryRenderer struct {
	styles *Styles
	cards  *CardRenderer

	items   []gallery.Card
	mode    domain.ViewMode
	empty   bool
	err     error
	cache   map[int]string
	cacheW  int
	renders int
}

// NewGalleryRenderer creates a renderer drawing with styles
func NewGalleryRenderer(styles *Styles) *GalleryRenderer {
	return &GalleryRenderer{
		styles: styles,
		cards:  NewCardRenderer(styles),
		mode:   domain.ViewGrid,
		cache:  make(map[int]string),
	}
}

// SetStyles switches palettes and drops every cached card
func (g *GalleryRenderer) SetStyles(styles *Styles) {
	g.styles = styles
	g.cards = NewCardRenderer(styles)
	g.invalidate()
}

// Styles returns the active styles
func (g *GalleryRenderer) Styles() *Styles {
	return g.styles
}

func (g *GalleryRenderer) Render(cards []gallery.Card, mode domain.ViewMode) error {
	g.items = append([]gallery.Card(nil), cards...)
	g.mode = mode
	g.empty = false
	g.err = nil
	g.renders++
	g.invalidate()
	return nil
}

func (g *GalleryRenderer) RenderEmpty() error {
	g.items = nil
	g.empty = true
	g.err = nil
	g.renders++
	g.invalidate()
	return nil
}

func (g *GalleryRenderer) RenderError(err error) {
	g.err = err
}

func (g *GalleryRenderer) ApplyViewMode(mode domain.ViewMode) {
	g.mode = mode
	g.invalidate()
}

func (g *GalleryRenderer) UpdateCard(card gallery.Card) {
	if card.Index < 0 || card.Index >= len(g.items) {
		return
	}
	if g.items[card.Index].Image.ID != card.Image.ID {
		return
	}
	g.items[card.Index] = card
	delete(g.cache, card.Index)
}

// Renders counts full renders, used to check that thumbnail updates do not
// redraw the whole gallery
func (g *GalleryRenderer) Renders() int {
	return g.renders
}

func (g *GalleryRenderer) invalidate() {
	g.cache = make(map[int]string)
}

// Body draws the visible part of the gallery in a width x height area
func (g *GalleryRenderer) Body(v *gallery.View, width, height int) string {
	var content string
	switch {
	case g.err != nil || v.Status() == gallery.StatusError:
		err := g.err
		if err == nil {
			err = v.Err()
		}
		content = g.renderError(err, width, height)
	case g.empty || len(g.items) == 0:
		content = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			g.styles.Empty.Render("No images match the current filters.\nPress x to clear filters."))
	default:
		content = g.renderCards(v, width)
	}
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

func (g *GalleryRenderer) renderError(err error, width, height int) string {
	msg := "Something went wrong."
	if err != nil {
		msg = fmt.Sprintf("Could not show the gallery:\n%v", err)
	}
	box := g.styles.ErrorBox.Render(msg + "\n\n" + g.styles.Dim.Render("Press r to reload"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (g *GalleryRenderer) renderCards(v *gallery.View, width int) string {
	if width != g.cacheW {
		g.invalidate()
		g.cacheW = width
	}
	size := v.CardSize()
	thumb := v.Thumb()
	layout := v.Layout()
	start, end := v.VisibleRange()
	if end > len(g.items) {
		end = len(g.items)
	}

	var rows []string
	for rowStart := start; rowStart < end; rowStart += layout.Columns {
		rowEnd := rowStart + layout.Columns
		if rowEnd > end {
			rowEnd = end
		}
		cells := make([]string, 0, rowEnd-rowStart)
		for i := rowStart; i < rowEnd; i++ {
			cells = append(cells, g.card(i, size, thumb, i == v.Focus()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// card returns a cached drawing for unfocused cards. The focused card is
// always drawn fresh so moving focus costs two cards.
func (g *GalleryRenderer) card(index int, size, thumb gallery.CardSize, focused bool) string {
	if focused {
		return g.cards.Render(g.items[index], g.mode, size, thumb, true)
	}
	if cached, ok := g.cache[index]; ok {
		return cached
	}
	out := g.cards.Render(g.items[index], g.mode, size, thumb, false)
	g.cache[index] = out
	return out
}
