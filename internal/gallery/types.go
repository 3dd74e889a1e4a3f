package gallery

import (
	"errors"

	"picgrid/internal/domain"
)

// ErrRenderInProgress is returned by Update when called while a render runs.
// The call is dropped, not queued.
var ErrRenderInProgress = errors.New("gallery: render already in progress")

// CardState tracks the lazy thumbnail of a card
type CardState int

const (
	CardPending CardState = iota
	CardLoading
	CardLoaded
	CardFailed
)

func (s CardState) String() string {
	switch s {
	case CardPending:
		return "pending"
	case CardLoading:
		return "loading"
	case CardLoaded:
		return "loaded"
	case CardFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Card is one rendered unit of the gallery
type Card struct {
	Index int
	Image domain.Image
	State CardState
	// Thumb is the rendered thumbnail, or a placeholder once State is CardFailed
	Thumb string
}

// Status is what the gallery area currently shows
type Status int

const (
	StatusCards Status = iota
	StatusEmpty
	StatusError
)

// Renderer is the presentation side of the gallery
type Renderer interface {
	// Render replaces every card. On error the gallery keeps its prior cards.
	Render(cards []Card, mode domain.ViewMode) error
	// RenderEmpty shows the empty-state presentation
	RenderEmpty() error
	// RenderError shows a recoverable error in place of the cards
	RenderError(err error)
	// ApplyViewMode re-lays out existing cards without re-rendering them
	ApplyViewMode(mode domain.ViewMode)
	// UpdateCard refreshes a single card after its thumbnail changed
	UpdateCard(card Card)
}

// Layout is the card window in terminal cells
type Layout struct {
	Width     int
	Height    int
	Columns   int
	CardRows  int
	ScrollRow int
}

// CardSize is the footprint of a card in cells
type CardSize struct {
	Width  int
	Height int
}

// LoadRequest asks for the thumbnail of one card
type LoadRequest struct {
	Generation uint64
	Index      int
	Image      domain.Image
	// Width and Height are the thumbnail box in cells
	Width  int
	Height int
}

// LoadResult is the outcome of a LoadRequest
type LoadResult struct {
	Rendered string
	Err      error
}

// PlaceholderFunc renders a placeholder for a card whose image failed
type PlaceholderFunc func(title string, width, height int) string
