package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"picgrid/internal/domain"
)

// ViewerState is what the full-screen viewer shows
type ViewerState struct {
	Image   domain.Image
	Label   string // "3 / 12"
	Picture string // rendered image, empty while loading
	Loading bool
	Err     error
}

// ViewerChrome is the number of rows the viewer frame uses around the picture
const ViewerChrome = 9

// PictureSize returns the picture area for a terminal of width x height
func PictureSize(width, height int) (int, int) {
	w := width - 8
	h := height - ViewerChrome - 2
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

// ViewerRenderer draws the full-screen image viewer
type ViewerRenderer struct {
	styles *Styles
	popup  *PopupRenderer
}

// NewViewerRenderer creates a new viewer renderer
func NewViewerRenderer(styles *Styles) *ViewerRenderer {
	return &ViewerRenderer{styles: styles, popup: NewPopupRenderer(styles)}
}

// Render draws the viewer over background
func (vr *ViewerRenderer) Render(state ViewerState, background string, width, height int) string {
	pw, ph := PictureSize(width, height)

	var picture string
	switch {
	case state.Err != nil:
		picture = vr.styles.StatusError.Render(fmt.Sprintf("Could not load %s", state.Image.Title()))
	case state.Loading || state.Picture == "":
		picture = vr.styles.Dim.Render("loading…")
	default:
		picture = state.Picture
	}
	picture = lipgloss.Place(pw, ph, lipgloss.Center, lipgloss.Center, picture)

	img := state.Image
	caption := []string{
		vr.styles.CardTitle.Render(truncate(img.Title(), pw)),
		vr.styles.CardMeta.Render(truncate(metaLine(img), pw)),
		vr.styles.ViewerCaption.Render(truncate(img.DescriptionOr(""), pw)),
		vr.styles.CardTag.Render(truncate(tagLine(img.Tags), pw)),
	}
	footer := lipgloss.JoinHorizontal(lipgloss.Top,
		vr.styles.Title.Render(state.Label),
		"   ",
		vr.styles.Help.Render("←/→ space backspace · home/end · esc close"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		picture,
		"",
		strings.Join(caption, "\n"),
		"",
		footer,
	)
	return vr.popup.RenderPopupOverlay(background, body, height, width, vr.styles.Viewer)
}
