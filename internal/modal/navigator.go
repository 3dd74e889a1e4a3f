// Package modal is the full-screen image viewer state machine.
package modal

import (
	"fmt"
	"time"

	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/logging"
	"picgrid/internal/schedule"
)

// Options configures a Navigator
type Options struct {
	Presenter  Presenter
	Preloader  Preloader
	Bus        eventbus.EventBus
	Scheduler  schedule.Scheduler
	CloseGrace time.Duration
	Gestures   GestureConfig
}

// Navigator owns the position inside a list snapshot taken at Open
type Navigator struct {
	presenter  Presenter
	preloader  Preloader
	bus        eventbus.EventBus
	scheduler  schedule.Scheduler
	closeGrace time.Duration
	gestures   GestureConfig

	isOpen         bool
	images         []domain.Image
	current        int
	pendingRelease schedule.Cancel
}

// New creates a closed navigator
func New(opts Options) *Navigator {
	if opts.Scheduler == nil {
		opts.Scheduler = &schedule.Timer{}
	}
	if opts.CloseGrace < 0 {
		opts.CloseGrace = DefaultCloseGrace
	}
	return &Navigator{
		presenter:  opts.Presenter,
		preloader:  opts.Preloader,
		bus:        eventbus.OrNull(opts.Bus),
		scheduler:  opts.Scheduler,
		closeGrace: opts.CloseGrace,
		gestures:   opts.Gestures.withDefaults(),
	}
}

// Open shows images starting at index, clamped into range. An empty list
// leaves the navigator closed and returns false.
func (n *Navigator) Open(index int, images []domain.Image) bool {
	if len(images) == 0 {
		logging.Debug("Modal: refusing to open with no images")
		return false
	}
	if n.pendingRelease != nil {
		n.pendingRelease()
		n.pendingRelease = nil
	}

	n.images = make([]domain.Image, len(images))
	copy(n.images, images)
	n.current = clamp(index, len(images))
	n.isOpen = true

	if n.presenter != nil {
		n.presenter.LockScroll(true)
	}
	n.updateContent()
	n.bus.Publish(domain.ModalOpenedEvent{CurrentIndex: n.current, Count: len(n.images)})
	return true
}

// Navigate moves one image forward (+1) or back (-1), wrapping around.
// It does nothing when closed or when there is at most one image.
func (n *Navigator) Navigate(direction int) bool {
	if !n.isOpen || len(n.images) <= 1 || direction == 0 {
		return false
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	n.current = (n.current + step + len(n.images)) % len(n.images)
	n.updateContent()
	n.bus.Publish(domain.ModalNavigatedEvent{
		Direction:    step,
		CurrentIndex: n.current,
		Image:        n.images[n.current],
	})
	return true
}

// GoToImage jumps to index. Out of range indexes are ignored.
func (n *Navigator) GoToImage(index int) bool {
	if !n.isOpen || index < 0 || index >= len(n.images) {
		return false
	}
	n.current = index
	n.updateContent()
	n.bus.Publish(domain.ModalNavigatedEvent{
		Direction:    0,
		CurrentIndex: n.current,
		Image:        n.images[n.current],
	})
	return true
}

// Close hides the viewer and releases the image after the close grace.
// The release is best effort: a later Open cancels it.
func (n *Navigator) Close() bool {
	if !n.isOpen {
		return false
	}
	n.isOpen = false
	if n.presenter != nil {
		n.presenter.LockScroll(false)
	}

	n.pendingRelease = n.scheduler.After(n.closeGrace, n.release)
	n.bus.Publish(domain.ModalClosedEvent{})
	return true
}

func (n *Navigator) release() {
	n.pendingRelease = nil
	if n.isOpen {
		return
	}
	n.images = nil
	n.current = 0
	if n.presenter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("Modal: release after presenter went away: %v", r)
		}
	}()
	n.presenter.Release()
}

func (n *Navigator) updateContent() {
	img := n.images[n.current]
	if n.presenter != nil {
		n.presenter.Show(img, n.current, len(n.images))
	}
	n.preloadNeighbours()
}

func (n *Navigator) preloadNeighbours() {
	if n.preloader == nil || len(n.images) <= 1 {
		return
	}
	count := len(n.images)
	prev := (n.current - 1 + count) % count
	next := (n.current + 1) % count
	n.safePreload(n.images[prev])
	if next != prev {
		n.safePreload(n.images[next])
	}
}

func (n *Navigator) safePreload(img domain.Image) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("Modal: preload of %s panicked: %v", img.ID, r)
		}
	}()
	n.preloader.Preload(img)
}

// IsOpen reports whether the viewer is open
func (n *Navigator) IsOpen() bool {
	return n.isOpen
}

// CurrentIndex returns the position inside the snapshot
func (n *Navigator) CurrentIndex() int {
	return n.current
}

// Snapshot returns the navigator state
func (n *Navigator) Snapshot() State {
	s := State{IsOpen: n.isOpen, CurrentIndex: n.current, Count: len(n.images)}
	if n.current < len(n.images) {
		s.Image = n.images[n.current]
	}
	return s
}

// PositionLabel returns "3 / 12" style text, or "" when closed
func (n *Navigator) PositionLabel() string {
	if !n.isOpen || len(n.images) == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", n.current+1, len(n.images))
}

func clamp(index, count int) int {
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
