package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"picgrid/internal/domain"
	"picgrid/internal/filters"
	"picgrid/internal/gallery"
)

// Rows taken by the header and filter bar above the gallery, and by the
// status and help lines below it
const (
	BodyTop    = 2
	BodyBottom = 2
)

// BodySize returns the gallery area for a terminal of width x height
func BodySize(width, height int) (int, int) {
	h := height - BodyTop - BodyBottom
	if h < 1 {
		h = 1
	}
	if width < 1 {
		width = 1
	}
	return width, h
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Gallery       *gallery.View
	Criteria      filters.Criteria
	Location      string
	Total         int
	InSearch      bool
	SearchPrompt  string
	SearchInput   string
	StatusMessage string
	StatusIsError bool
	Theme         domain.ThemeMode
	Viewer        *ViewerState
	HelpLine      string
	Fatal         error
}

// Renderer handles all view rendering
type Renderer struct {
	styles  *Styles
	gallery *GalleryRenderer
	viewer  *ViewerRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{
		styles:  styles,
		gallery: NewGalleryRenderer(styles),
		viewer:  NewViewerRenderer(styles),
	}
}

// Gallery returns the gallery renderer to hand to the gallery view
func (r *Renderer) Gallery() *GalleryRenderer {
	return r.gallery
}

// SetStyles switches the palette of every sub-renderer
func (r *Renderer) SetStyles(styles *Styles) {
	r.styles = styles
	r.gallery.SetStyles(styles)
	r.viewer = NewViewerRenderer(styles)
}

// Styles returns the active styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}

	if state.Fatal != nil {
		return r.renderFatal(state.Fatal, width, height)
	}

	bodyW, bodyH := BodySize(width, height)
	body := ""
	if state.Gallery != nil {
		body = r.gallery.Body(state.Gallery, bodyW, bodyH)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		r.renderHeader(state, width),
		r.renderFilterBar(state, width),
		body,
		r.renderStatus(state, width),
		r.styles.Help.Render(truncate(state.HelpLine, width)),
	)

	if state.Viewer != nil {
		return r.viewer.Render(*state.Viewer, screen, width, height)
	}
	return screen
}

func (r *Renderer) renderHeader(state ViewState, width int) string {
	logo := r.styles.Title.Background(r.styles.Palette.Chrome).Render("picgrid")
	right := r.styles.Location.Background(r.styles.Palette.Chrome).Render(state.Location)

	// Build the title line with the location right-aligned
	inner := width - 2
	padding := inner - lipgloss.Width(logo) - lipgloss.Width(right)
	line := logo
	if padding > 0 {
		line = logo + strings.Repeat(" ", padding) + right
	} else if state.Location != "" {
		line = logo + "  " + right
	}
	return r.styles.Header.Width(width).MaxWidth(width).Render(line)
}

func (r *Renderer) renderFilterBar(state ViewState, width int) string {
	if state.InSearch {
		return truncate(r.styles.SearchPrompt.Render(state.SearchPrompt)+state.SearchInput, width)
	}

	c := state.Criteria
	parts := []string{}
	if c.SearchTerm != "" {
		parts = append(parts, r.styles.Filter.Render(fmt.Sprintf("search: %q", c.SearchTerm)))
	}
	category := c.Category
	if category == "" {
		category = "all"
	}
	parts = append(parts, fmt.Sprintf("category: %s", category))
	arrow := "↑"
	if c.SortOrder == filters.Desc {
		arrow = "↓"
	}
	parts = append(parts, fmt.Sprintf("sort: %s %s", c.SortKey, arrow))

	shown := 0
	if state.Gallery != nil {
		shown = state.Gallery.Len()
	}
	parts = append(parts, r.styles.Dim.Render(fmt.Sprintf("%d of %d images", shown, state.Total)))
	return truncate(strings.Join(parts, "  "), width)
}

func (r *Renderer) renderStatus(state ViewState, width int) string {
	left := state.StatusMessage
	if left != "" && state.StatusIsError {
		left = r.styles.StatusError.Render(left)
	}
	if left == "" && state.Gallery != nil && state.Gallery.Len() > 0 {
		left = fmt.Sprintf("%d / %d", state.Gallery.Focus()+1, state.Gallery.Len())
	}

	mode := domain.ViewGrid
	if state.Gallery != nil {
		mode = state.Gallery.Mode()
	}
	right := fmt.Sprintf("%s · %s", mode, state.Theme)

	inner := width - 2
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if padding > 0 {
		line = left + strings.Repeat(" ", padding) + right
	}
	return r.styles.Status.Width(width).MaxWidth(width).Render(line)
}

func (r *Renderer) renderFatal(err error, width, height int) string {
	box := r.styles.ErrorBox.Render(fmt.Sprintf("Failed to load gallery data:\n%v", err) +
		"\n\n" + r.styles.Dim.Render("Press r to retry, q to quit"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
