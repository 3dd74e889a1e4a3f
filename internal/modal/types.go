package modal

import (
	"time"

	"picgrid/internal/domain"
)

// Presenter shows the viewer. Release may be called after the presenter
// has gone away and must not fail.
type Presenter interface {
	Show(img domain.Image, index, count int)
	Release()
	LockScroll(locked bool)
}

// Preloader warms neighbouring images. Failures are silent.
type Preloader interface {
	Preload(img domain.Image)
}

// PreloadFunc adapts a function to Preloader
type PreloadFunc func(img domain.Image)

func (f PreloadFunc) Preload(img domain.Image) { f(img) }

// State is a snapshot of the navigator
type State struct {
	IsOpen       bool
	CurrentIndex int
	Count        int
	Image        domain.Image
}

// DefaultCloseGrace is how long the displayed image is kept after Close
const DefaultCloseGrace = 300 * time.Millisecond
