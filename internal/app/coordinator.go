// Package app wires the filter state, gallery, viewer and theme together.
// The coordinator is the only caller of FilterState.Apply.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"picgrid/internal/datastore"
	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/filters"
	"picgrid/internal/gallery"
	"picgrid/internal/logging"
	"picgrid/internal/modal"
	"picgrid/internal/schedule"
	"picgrid/internal/storage"
	"picgrid/internal/theme"
)

var (
	// ErrNoRenderTarget means no gallery renderer was supplied
	ErrNoRenderTarget = errors.New("app: gallery render target is missing")
	// ErrNoDataStore means no data was loaded
	ErrNoDataStore = errors.New("app: data store is missing")
)

// Defaults for Options
const (
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultResizeDebounce = 400 * time.Millisecond
)

// Options configures a Coordinator
type Options struct {
	Store     *datastore.Store
	Bus       eventbus.EventBus
	Renderer  gallery.Renderer
	Presenter modal.Presenter
	Preloader modal.Preloader
	Applier   theme.Applier
	Storage   storage.Store
	Scheduler schedule.Scheduler

	Locale       string
	InitialQuery url.Values
	ViewMode     domain.ViewMode
	SystemDark   bool

	ProximityRows int
	Thumb         gallery.CardSize
	Placeholder   gallery.PlaceholderFunc

	SearchDebounce time.Duration
	ResizeDebounce time.Duration
	CloseGrace     time.Duration
	Gestures       modal.GestureConfig
}

// Coordinator is the root object of a running gallery
type Coordinator struct {
	Filters  *filters.FilterState
	Gallery  *gallery.View
	Modal    *modal.Navigator
	Theme    *theme.Controller
	Location *Location

	bus     eventbus.EventBus
	store   *datastore.Store
	storage storage.Store
	search  *schedule.Debouncer
	resize  *schedule.Debouncer
	unsubs  []func()
}

// New builds every component and wires the subscriptions. Nothing is
// rendered until Start.
func New(opts Options) (*Coordinator, error) {
	if opts.Store == nil {
		return nil, ErrNoDataStore
	}
	if opts.Renderer == nil {
		return nil, ErrNoRenderTarget
	}
	if opts.Bus == nil {
		opts.Bus = eventbus.New()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = &schedule.Timer{}
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	if opts.ResizeDebounce <= 0 {
		opts.ResizeDebounce = DefaultResizeDebounce
	}

	c := &Coordinator{
		bus:     opts.Bus,
		store:   opts.Store,
		storage: opts.Storage,
		search:  schedule.NewDebouncer(opts.Scheduler, opts.SearchDebounce),
		resize:  schedule.NewDebouncer(opts.Scheduler, opts.ResizeDebounce),
	}

	fs, err := filters.New(opts.Store.Data(), opts.Bus,
		filters.WithLocale(opts.Locale),
		filters.WithCriteria(filters.DecodeQuery(opts.InitialQuery)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create filters: %w", err)
	}
	c.Filters = fs

	gv, err := gallery.New(gallery.Options{
		Renderer:      opts.Renderer,
		Bus:           opts.Bus,
		Mode:          opts.ViewMode,
		ProximityRows: opts.ProximityRows,
		Thumb:         opts.Thumb,
		Placeholder:   opts.Placeholder,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRenderTarget, err)
	}
	c.Gallery = gv

	c.Modal = modal.New(modal.Options{
		Presenter:  scrollLockPresenter{inner: opts.Presenter, gallery: gv},
		Preloader:  opts.Preloader,
		Bus:        opts.Bus,
		Scheduler:  opts.Scheduler,
		CloseGrace: opts.CloseGrace,
		Gestures:   opts.Gestures,
	})
	c.Theme = theme.New(opts.Storage, opts.Applier, opts.Bus, theme.WithSystemDark(opts.SystemDark))
	c.Location = NewLocation(fs.Query())

	c.subscribeToEvents()
	return c, nil
}

// subscribeToEvents sets up event handlers
func (c *Coordinator) subscribeToEvents() {
	c.unsubs = append(c.unsubs,
		c.bus.Subscribe(eventbus.EventFiltersChanged, func(e eventbus.DomainEvent) {
			c.Location.Replace(c.Filters.Query())
			c.Recompute()
		}),
		c.bus.Subscribe(eventbus.EventCardActivated, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.CardActivatedEvent)
			if !ok {
				return
			}
			c.Modal.Open(ev.Index, ev.FullList)
		}),
	)
}

// Start applies the theme and renders the initial list
func (c *Coordinator) Start() {
	c.Theme.Apply()
	c.Recompute()
}

// Recompute filters the master list and pushes the result into the gallery.
// A failure anywhere in the pipeline becomes the gallery error state.
func (c *Coordinator) Recompute() {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Filter pipeline panicked: %v", r)
			c.Gallery.ShowError(fmt.Errorf("could not apply filters: %v", r))
		}
	}()

	results := c.Filters.Apply(c.store.Images())
	if err := c.Gallery.Update(results); err != nil {
		if errors.Is(err, gallery.ErrRenderInProgress) {
			return
		}
		logging.Error("Gallery update failed: %v", err)
		c.Gallery.ShowError(err)
	}
}

// SearchInput debounces a search keystroke; only the latest term within the
// quiet window is applied
func (c *Coordinator) SearchInput(term string) {
	c.search.Trigger(func() {
		c.Filters.SetSearch(term)
	})
}

// FlushSearch applies term immediately, dropping any pending keystroke
func (c *Coordinator) FlushSearch(term string) {
	c.search.Stop()
	if filters.NormalizeSearch(term) != c.Filters.Criteria().SearchTerm {
		c.Filters.SetSearch(term)
	}
}

// Resize debounces a terminal resize. after runs once the gallery has the
// new size, so callers can request newly visible thumbnails.
func (c *Coordinator) Resize(width, height int, after func()) {
	c.resize.Trigger(func() {
		c.Gallery.Resize(width, height)
		if after != nil {
			after()
		}
	})
}

// Categories returns the declared categories
func (c *Coordinator) Categories() []string {
	return c.store.Categories()
}

// Store returns the data snapshot
func (c *Coordinator) Store() *datastore.Store {
	return c.store
}

// Bus returns the event bus
func (c *Coordinator) Bus() eventbus.EventBus {
	return c.bus
}

// WatchStorage forwards changes made by other processes to the theme
// controller. post runs the callback on the UI loop.
func (c *Coordinator) WatchStorage(ctx context.Context, post func(func())) error {
	return c.storage.Watch(ctx, func(key, value string) {
		post(func() { c.Theme.StorageChanged(key, value) })
	})
}

// Close removes subscriptions and drops pending debounced work
func (c *Coordinator) Close() {
	c.search.Stop()
	c.resize.Stop()
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}

// scrollLockPresenter freezes gallery scrolling while the viewer is open
type scrollLockPresenter struct {
	inner   modal.Presenter
	gallery *gallery.View
}

func (p scrollLockPresenter) Show(img domain.Image, index, count int) {
	if p.inner != nil {
		p.inner.Show(img, index, count)
	}
}

func (p scrollLockPresenter) Release() {
	if p.inner != nil {
		p.inner.Release()
	}
}

func (p scrollLockPresenter) LockScroll(locked bool) {
	p.gallery.SetScrollLocked(locked)
	if p.inner != nil {
		p.inner.LockScroll(locked)
	}
}
