package app

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"picgrid/internal/datastore"
	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/gallery"
	"picgrid/internal/schedule"
	"picgrid/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	renders [][]string
	empties int
	errs    []error
	fail    error
	panics  bool
}

func (r *recordingRenderer) Render(cards []gallery.Card, mode domain.ViewMode) error {
	if r.panics {
		panic("renderer exploded")
	}
	if r.fail != nil {
		return r.fail
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Image.Filename
	}
	r.renders = append(r.renders, names)
	return nil
}

func (r *recordingRenderer) RenderEmpty() error {
	r.empties++
	return r.fail
}

func (r *recordingRenderer) RenderError(err error) { r.errs = append(r.errs, err) }

func (r *recordingRenderer) ApplyViewMode(domain.ViewMode) {}

func (r *recordingRenderer) UpdateCard(gallery.Card) {}

func (r *recordingRenderer) last() []string {
	if len(r.renders) == 0 {
		return nil
	}
	return r.renders[len(r.renders)-1]
}

func testStore() *datastore.Store {
	return datastore.NewStore(&domain.GalleryData{
		Images: []domain.Image{
			{ID: "1", Filename: "red-car.jpg", Category: "vehicles", DateAdded: "2024-03-01", Tags: []string{"red"}},
			{ID: "2", Filename: "beach.jpg", Category: "nature", DateAdded: "2024-01-01", Tags: []string{"sea"}},
			{ID: "3", Filename: "apple.jpg", Category: "food", DateAdded: "2024-02-01", Tags: []string{"red"}},
		},
		Categories: []string{"nature", "vehicles", "food"},
	}, ".", "gallery.json")
}

type fixture struct {
	c        *Coordinator
	renderer *recordingRenderer
	clock    *schedule.Manual
	bus      eventbus.EventBus
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		renderer: &recordingRenderer{},
		clock:    schedule.NewManual(),
		bus:      eventbus.New(),
	}
	opts := Options{
		Store:     testStore(),
		Bus:       f.bus,
		Renderer:  f.renderer,
		Scheduler: f.clock,
		Storage:   storage.NewMemory(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	c, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	f.c = c
	return f
}

func TestNewRequiresStoreAndRenderer(t *testing.T) {
	_, err := New(Options{Renderer: &recordingRenderer{}})
	assert.ErrorIs(t, err, ErrNoDataStore)

	_, err = New(Options{Store: testStore()})
	assert.ErrorIs(t, err, ErrNoRenderTarget)
}

func TestStartRendersSortedList(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()
	assert.Equal(t, []string{"apple.jpg", "beach.jpg", "red-car.jpg"}, f.renderer.last())
	assert.Equal(t, "", f.c.Location.String())
}

func TestInitialQuerySeedsFilters(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.InitialQuery = url.Values{"sort": {"date"}, "order": {"desc"}}
	})
	f.c.Start()

	assert.Equal(t, []string{"red-car.jpg", "apple.jpg", "beach.jpg"}, f.renderer.last())
	assert.Equal(t, "?order=desc&sort=date", f.c.Location.String())
}

func TestFilterChangeRecomputesAndReplacesLocation(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()

	f.c.Filters.SetCategory("nature")
	assert.Equal(t, []string{"beach.jpg"}, f.renderer.last())
	assert.Equal(t, "?category=nature", f.c.Location.String())
	assert.Equal(t, 1, f.c.Location.Replaces())
}

func TestEmptyCategoryShowsEmptyState(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()

	f.c.Filters.SetCategory("abstract")
	assert.Equal(t, gallery.StatusEmpty, f.c.Gallery.Status())
	assert.Equal(t, 1, f.renderer.empties)
	assert.Empty(t, f.renderer.errs)
}

func TestSearchIsDebounced(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()
	renders := len(f.renderer.renders)

	f.c.SearchInput("r")
	f.clock.Advance(100 * time.Millisecond)
	f.c.SearchInput("re")
	f.clock.Advance(100 * time.Millisecond)
	f.c.SearchInput("red car")

	f.clock.Advance(299 * time.Millisecond)
	assert.Len(t, f.renderer.renders, renders)

	f.clock.Advance(time.Millisecond)
	assert.Len(t, f.renderer.renders, renders+1)
	assert.Equal(t, []string{"red-car.jpg"}, f.renderer.last())
	assert.Equal(t, "?search=red+car", f.c.Location.String())
}

func TestFlushSearchAppliesImmediately(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()

	f.c.SearchInput("sea")
	f.c.FlushSearch("sea")
	assert.Equal(t, []string{"beach.jpg"}, f.renderer.last())

	renders := len(f.renderer.renders)
	f.clock.Advance(time.Second)
	assert.Len(t, f.renderer.renders, renders)
}

func TestResizeWaitsLongerThanSearch(t *testing.T) {
	assert.Greater(t, DefaultResizeDebounce, DefaultSearchDebounce)
}

func TestResizeIsDebounced(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()

	calls := 0
	f.c.Resize(40, 20, func() { calls++ })
	f.c.Resize(80, 40, func() { calls++ })
	f.clock.Advance(399 * time.Millisecond)
	assert.Zero(t, calls)

	f.clock.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 80, f.c.Gallery.Layout().Width)
}

func TestCardActivationOpensModalWithRenderedList(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()
	f.c.Filters.SetSearch("red")

	require.True(t, f.c.Gallery.Activate(1))
	require.True(t, f.c.Modal.IsOpen())
	s := f.c.Modal.Snapshot()
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "red-car.jpg", s.Image.Filename)
	assert.True(t, f.c.Gallery.ScrollLocked())

	// later filtering does not touch the viewer snapshot
	f.c.Filters.SetSearch("")
	assert.Equal(t, 2, f.c.Modal.Snapshot().Count)

	f.c.Modal.Close()
	assert.False(t, f.c.Gallery.ScrollLocked())
}

func TestRenderErrorBecomesErrorState(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()

	f.renderer.fail = errors.New("render target gone")
	f.c.Filters.SetCategory("food")

	assert.Equal(t, gallery.StatusError, f.c.Gallery.Status())
	require.Len(t, f.renderer.errs, 1)
	assert.Equal(t, 3, f.c.Gallery.Len(), "prior cards preserved")
}

func TestRendererPanicKeepsPriorCards(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()
	require.Equal(t, 3, f.c.Gallery.Len())

	f.renderer.panics = true
	f.c.Filters.SetCategory("food")

	assert.Equal(t, gallery.StatusError, f.c.Gallery.Status())
	assert.Equal(t, 3, f.c.Gallery.Len(), "prior cards are preserved")
	require.Len(t, f.renderer.errs, 1)
}

func TestPipelinePanicBecomesErrorState(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()

	f.c.store = nil
	require.NotPanics(t, f.c.Recompute)
	assert.Equal(t, gallery.StatusError, f.c.Gallery.Status())
}

func TestThemeSyncFromOtherProcess(t *testing.T) {
	mem := storage.NewMemory()
	f := newFixture(t, func(o *Options) { o.Storage = mem })
	f.c.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.c.WatchStorage(ctx, func(fn func()) { fn() }))

	mem.External(storage.KeyTheme, "dark")
	assert.Equal(t, domain.ThemeDark, f.c.Theme.Mode())
}

func TestCloseUnsubscribes(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Start()
	renders := len(f.renderer.renders)

	f.c.Close()
	f.c.Filters.SetCategory("nature")
	assert.Len(t, f.renderer.renders, renders)
}

func TestLocation(t *testing.T) {
	l := NewLocation(url.Values{"search": {"x"}})
	q := l.Query()
	q.Set("search", "y")
	assert.Equal(t, "?search=x", l.String())

	l.Replace(url.Values{})
	assert.Equal(t, "", l.String())
	assert.Equal(t, 1, l.Replaces())
}
