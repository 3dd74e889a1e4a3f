// Package gallery holds the rendered card list, the grid/list mode, focus,
// scrolling and the lazy thumbnail loading state.
package gallery

import (
	"fmt"
	"strings"

	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/logging"
)

// Options configures a View
type Options struct {
	Renderer      Renderer
	Bus           eventbus.EventBus
	Mode          domain.ViewMode
	ProximityRows int
	// Thumb is the thumbnail box inside a card, in cells
	Thumb       CardSize
	Placeholder PlaceholderFunc
}

// View is the gallery state machine
type View struct {
	renderer    Renderer
	bus         eventbus.EventBus
	placeholder PlaceholderFunc

	cards      []Card
	status     Status
	err        error
	mode       domain.ViewMode
	generation uint64
	rendering  bool

	layout        Layout
	proximityRows int
	thumb         CardSize
	focus         int
	scrollLocked  bool
}

// New creates a gallery view. A nil Renderer is a configuration error.
func New(opts Options) (*View, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("gallery: renderer is required")
	}
	if opts.Mode != domain.ViewList {
		opts.Mode = domain.ViewGrid
	}
	if opts.ProximityRows < 0 {
		opts.ProximityRows = 0
	}
	if opts.Thumb.Width < 1 {
		opts.Thumb.Width = 20
	}
	if opts.Thumb.Height < 1 {
		opts.Thumb.Height = 8
	}
	if opts.Placeholder == nil {
		opts.Placeholder = textPlaceholder
	}
	v := &View{
		renderer:      opts.Renderer,
		bus:           eventbus.OrNull(opts.Bus),
		placeholder:   opts.Placeholder,
		mode:          opts.Mode,
		status:        StatusEmpty,
		proximityRows: opts.ProximityRows,
		thumb:         opts.Thumb,
	}
	v.layout = Layout{Columns: 1, CardRows: 1}
	return v, nil
}

// Update replaces the card list and renders it. Thumbnails already loaded
// for the same image are carried over.
func (v *View) Update(images []domain.Image) (err error) {
	if v.rendering {
		logging.Debug("Gallery: dropping update of %d images, render in progress", len(images))
		return ErrRenderInProgress
	}
	v.rendering = true

	prevCards, prevStatus, prevErr := v.cards, v.status, v.err
	prevFocus, prevScroll, prevGen := v.focus, v.layout.ScrollRow, v.generation
	restore := func() {
		v.cards, v.status, v.err = prevCards, prevStatus, prevErr
		v.focus, v.layout.ScrollRow, v.generation = prevFocus, prevScroll, prevGen
	}
	defer func() {
		v.rendering = false
		if r := recover(); r != nil {
			restore()
			err = fmt.Errorf("gallery render failed: %v", r)
		}
	}()

	loaded := make(map[string]Card, len(v.cards))
	for _, c := range v.cards {
		if c.State == CardLoaded || c.State == CardFailed {
			loaded[c.Image.ID] = c
		}
	}

	cards := make([]Card, len(images))
	for i, img := range images {
		card := Card{Index: i, Image: img, State: CardPending}
		if prev, ok := loaded[img.ID]; ok && img.ID != "" {
			card.State, card.Thumb = prev.State, prev.Thumb
		}
		cards[i] = card
	}

	v.cards = cards
	v.err = nil
	v.focus = 0
	v.layout.ScrollRow = 0
	v.generation++

	if len(cards) == 0 {
		v.status = StatusEmpty
		err = v.renderer.RenderEmpty()
	} else {
		v.status = StatusCards
		err = v.renderer.Render(cards, v.mode)
	}
	if err != nil {
		restore()
		return fmt.Errorf("gallery render failed: %w", err)
	}

	v.bus.Publish(domain.GalleryRenderedEvent{Count: len(cards), Empty: len(cards) == 0})
	return nil
}

// ShowError replaces the gallery area with a recoverable error state.
// The cards are kept so a later Update starts from them.
func (v *View) ShowError(err error) {
	v.status = StatusError
	v.err = err
	v.renderer.RenderError(err)
}

// ToggleView flips between grid and list
func (v *View) ToggleView() domain.ViewMode {
	if v.mode == domain.ViewGrid {
		v.mode = domain.ViewList
	} else {
		v.mode = domain.ViewGrid
	}
	v.relayout()
	v.renderer.ApplyViewMode(v.mode)
	v.bus.Publish(domain.ViewChangedEvent{ViewMode: v.mode})
	return v.mode
}

// Activate announces the card at index with a copy of the rendered list
func (v *View) Activate(index int) bool {
	if index < 0 || index >= len(v.cards) || v.status != StatusCards {
		return false
	}
	v.focus = index
	v.ensureVisible()
	v.bus.Publish(domain.CardActivatedEvent{
		Index:    index,
		Image:    v.cards[index].Image,
		FullList: v.Images(),
	})
	return true
}

// ActivateFocused activates the focused card
func (v *View) ActivateFocused() bool {
	return v.Activate(v.focus)
}

// Images returns a copy of the rendered image list
func (v *View) Images() []domain.Image {
	out := make([]domain.Image, len(v.cards))
	for i, c := range v.cards {
		out[i] = c.Image
	}
	return out
}

// Cards returns a copy of the cards
func (v *View) Cards() []Card {
	out := make([]Card, len(v.cards))
	copy(out, v.cards)
	return out
}

// Card returns the card at index
func (v *View) Card(index int) (Card, bool) {
	if index < 0 || index >= len(v.cards) {
		return Card{}, false
	}
	return v.cards[index], true
}

// Len returns the number of cards
func (v *View) Len() int {
	return len(v.cards)
}

// Status returns what the gallery area shows
func (v *View) Status() Status {
	return v.status
}

// Err returns the error shown by ShowError
func (v *View) Err() error {
	return v.err
}

// Mode returns the view mode
func (v *View) Mode() domain.ViewMode {
	return v.mode
}

// Generation identifies the current render. Load requests carry it.
func (v *View) Generation() uint64 {
	return v.generation
}

// Thumb returns the thumbnail box in cells
func (v *View) Thumb() CardSize {
	return v.thumb
}

// CompleteLoad applies a thumbnail result. Results for an older render or a
// card that no longer exists are discarded and false is returned.
func (v *View) CompleteLoad(req LoadRequest, res LoadResult) bool {
	if req.Generation != v.generation || req.Index < 0 || req.Index >= len(v.cards) {
		logging.Debug("Gallery: discarding stale load for %s", req.Image.ID)
		return false
	}
	card := &v.cards[req.Index]
	if card.Image.ID != req.Image.ID {
		return false
	}

	if res.Err != nil {
		logging.Debug("Gallery: image %s failed: %v", card.Image.ID, res.Err)
		card.State = CardFailed
		card.Thumb = v.placeholder(card.Image.Title(), req.Width, req.Height)
	} else {
		card.State = CardLoaded
		card.Thumb = res.Rendered
	}
	v.renderer.UpdateCard(*card)
	return true
}

func textPlaceholder(title string, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	runes := []rune(title)
	if len(runes) > width {
		runes = runes[:width]
	}
	mid := height / 2
	lines[mid] = string(runes) + strings.Repeat(" ", width-len(runes))
	return strings.Join(lines, "\n")
}
