package modal

import (
	"fmt"
	"testing"
	"time"

	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresenter struct {
	shown    []int
	locks    []bool
	released int
	gone     bool
}

func (p *fakePresenter) Show(img domain.Image, index, count int) { p.shown = append(p.shown, index) }
func (p *fakePresenter) LockScroll(locked bool) { p.locks = append(p.locks, locked) }
func (p *fakePresenter) Release() {
	if p.gone {
		panic("presenter is gone")
	}
	p.released++
}

type fakePreloader struct {
	ids []string
}

func (p *fakePreloader) Preload(img domain.Image) { p.ids = append(p.ids, img.ID) }

func images(n int) []domain.Image {
	out := make([]domain.Image, n)
	for i := range out {
		out[i] = domain.Image{ID: fmt.Sprintf("%d", i), Filename: fmt.Sprintf("%d.jpg", i)}
	}
	return out
}

type fixture struct {
	nav       *Navigator
	presenter *fakePresenter
	preloader *fakePreloader
	clock     *schedule.Manual
	navigated []eventbus.ModalNavigatedEvent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		presenter: &fakePresenter{},
		preloader: &fakePreloader{},
		clock:     schedule.NewManual(),
	}
	bus := eventbus.New()
	bus.Subscribe(eventbus.EventModalNavigated, func(e eventbus.DomainEvent) {
		f.navigated = append(f.navigated, e.(eventbus.ModalNavigatedEvent))
	})
	f.nav = New(Options{
		Presenter:  f.presenter,
		Preloader:  f.preloader,
		Bus:        bus,
		Scheduler:  f.clock,
		CloseGrace: 300 * time.Millisecond,
	})
	return f
}

func TestOpenEmptyIsNoop(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.nav.Open(0, nil))
	assert.False(t, f.nav.Open(3, []domain.Image{}))
	assert.False(t, f.nav.IsOpen())
	assert.Empty(t, f.presenter.shown)
	assert.Empty(t, f.presenter.locks)
}

func TestOpenClampsIndex(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		for _, requested := range []int{-100, -1, 0, n / 2, n - 1, n, n + 5} {
			f := newFixture(t)
			require.True(t, f.nav.Open(requested, images(n)))
			idx := f.nav.CurrentIndex()
			assert.GreaterOrEqual(t, idx, 0, "n=%d requested=%d", n, requested)
			assert.Less(t, idx, n, "n=%d requested=%d", n, requested)
		}
	}
}

func TestOpenLocksScrollAndShows(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(1, images(3)))

	assert.Equal(t, []bool{true}, f.presenter.locks)
	assert.Equal(t, []int{1}, f.presenter.shown)
	assert.Equal(t, "2 / 3", f.nav.PositionLabel())
}

func TestOpenTakesSnapshot(t *testing.T) {
	f := newFixture(t)
	list := images(3)
	require.True(t, f.nav.Open(0, list))

	list[0].Filename = "changed"
	assert.Equal(t, "0.jpg", f.nav.Snapshot().Image.Filename)
}

func TestNavigateWraps(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(4)))

	require.True(t, f.nav.Navigate(-1))
	assert.Equal(t, 3, f.nav.CurrentIndex())

	require.True(t, f.nav.Navigate(1))
	assert.Equal(t, 0, f.nav.CurrentIndex())

	require.Len(t, f.navigated, 2)
	assert.Equal(t, eventbus.ModalNavigatedEvent{Direction: -1, CurrentIndex: 3, Image: images(4)[3]}, f.navigated[0])
	assert.Equal(t, 1, f.navigated[1].Direction)
}

func TestNavigateSingleImageIsNoop(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(1)))
	assert.False(t, f.nav.Navigate(1))
	assert.False(t, f.nav.Navigate(-1))
	assert.Empty(t, f.navigated)
}

func TestNavigateWhenClosedIsNoop(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.nav.Navigate(1))
	assert.False(t, f.nav.GoToImage(0))
}

func TestGoToImage(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(5)))

	assert.True(t, f.nav.GoToImage(4))
	assert.Equal(t, 4, f.nav.CurrentIndex())
	assert.False(t, f.nav.GoToImage(5))
	assert.False(t, f.nav.GoToImage(-1))
	assert.Equal(t, 4, f.nav.CurrentIndex())

	require.Len(t, f.navigated, 1)
	assert.Equal(t, 0, f.navigated[0].Direction)
}

func TestPreloadsNeighbours(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(4)))
	assert.Equal(t, []string{"3", "1"}, f.preloader.ids)

	f.nav.Navigate(1)
	assert.Equal(t, []string{"3", "1", "0", "2"}, f.preloader.ids)
}

func TestPreloadTwoImagesOnce(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(2)))
	assert.Equal(t, []string{"1"}, f.preloader.ids)
}

func TestCloseReleasesAfterGrace(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(3)))
	require.True(t, f.nav.Close())
	assert.False(t, f.nav.Close())

	assert.False(t, f.nav.IsOpen())
	assert.Equal(t, []bool{true, false}, f.presenter.locks)
	assert.Equal(t, "", f.nav.PositionLabel())

	f.clock.Advance(299 * time.Millisecond)
	assert.Zero(t, f.presenter.released)
	f.clock.Advance(time.Millisecond)
	assert.Equal(t, 1, f.presenter.released)
	assert.Zero(t, f.nav.Snapshot().Count)
}

func TestReleaseToleratesMissingPresenter(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(3)))
	f.nav.Close()
	f.presenter.gone = true

	assert.NotPanics(t, func() { f.clock.Advance(time.Second) })
}

func TestOpenCancelsPendingRelease(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(3)))
	f.nav.Close()
	require.True(t, f.nav.Open(2, images(3)))

	f.clock.Advance(time.Second)
	assert.Zero(t, f.presenter.released)
	assert.True(t, f.nav.IsOpen())
	assert.Equal(t, 3, f.nav.Snapshot().Count)
}

func TestHandleKey(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.nav.Open(0, images(5)))

	assert.True(t, f.nav.HandleKey(Key{Name: KeyRight}))
	assert.Equal(t, 1, f.nav.CurrentIndex())
	assert.True(t, f.nav.HandleKey(Key{Name: KeyLeft}))
	assert.Equal(t, 0, f.nav.CurrentIndex())
	assert.True(t, f.nav.HandleKey(Key{Name: KeyEnd}))
	assert.Equal(t, 4, f.nav.CurrentIndex())
	assert.True(t, f.nav.HandleKey(Key{Name: KeyHome}))
	assert.Equal(t, 0, f.nav.CurrentIndex())
	assert.True(t, f.nav.HandleKey(Key{Name: KeySpace}))
	assert.Equal(t, 1, f.nav.CurrentIndex())
	assert.True(t, f.nav.HandleKey(Key{Name: KeySpace, Shift: true}))
	assert.Equal(t, 0, f.nav.CurrentIndex())
	assert.True(t, f.nav.HandleKey(Key{Name: KeyBackspace}))
	assert.Equal(t, 4, f.nav.CurrentIndex())

	assert.False(t, f.nav.HandleKey(Key{Name: "x"}))

	assert.False(t, f.nav.HandleKey(Key{Name: KeyRight, InTextInput: true}))
	assert.False(t, f.nav.HandleKey(Key{Name: KeyEscape, InTextInput: true}))
	assert.Equal(t, 4, f.nav.CurrentIndex())
	assert.True(t, f.nav.IsOpen())

	assert.True(t, f.nav.HandleKey(Key{Name: KeyEscape}))
	assert.False(t, f.nav.IsOpen())
	assert.False(t, f.nav.HandleKey(Key{Name: KeyRight}))
}

func TestClassify(t *testing.T) {
	cfg := DefaultGestureConfig()
	fast := 100 * time.Millisecond

	tests := []struct {
		name string
		g    Gesture
		want GestureKind
	}{
		{"swipe right is previous", Gesture{Point{10, 5}, Point{30, 6}, fast}, GesturePrevious},
		{"swipe left is next", Gesture{Point{30, 5}, Point{10, 4}, fast}, GestureNext},
		{"swipe down closes", Gesture{Point{10, 2}, Point{11, 14}, fast}, GestureClose},
		{"short down is a tap", Gesture{Point{10, 2}, Point{10, 9}, fast}, GestureTap},
		{"swipe up is a tap", Gesture{Point{10, 20}, Point{10, 5}, fast}, GestureTap},
		{"too short", Gesture{Point{10, 5}, Point{13, 5}, fast}, GestureTap},
		{"exactly min distance is a tap", Gesture{Point{0, 5}, Point{6, 5}, fast}, GestureTap},
		{"just past min distance", Gesture{Point{0, 5}, Point{7, 5}, fast}, GesturePrevious},
		{"too long", Gesture{Point{0, 5}, Point{60, 5}, 700 * time.Millisecond}, GestureTap},
		{"below velocity", Gesture{Point{0, 5}, Point{7, 5}, 500 * time.Millisecond}, GestureTap},
		{"instant", Gesture{Point{0, 5}, Point{20, 5}, 0}, GesturePrevious},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.g, cfg))
		})
	}
}

func TestHandleGesture(t *testing.T) {
	f := newFixture(t)
	swipeLeft := Gesture{Point{30, 5}, Point{10, 5}, 100 * time.Millisecond}

	assert.Equal(t, GestureTap, f.nav.HandleGesture(swipeLeft))

	require.True(t, f.nav.Open(0, images(3)))
	assert.Equal(t, GestureNext, f.nav.HandleGesture(swipeLeft))
	assert.Equal(t, 1, f.nav.CurrentIndex())

	down := Gesture{Point{10, 0}, Point{10, 12}, 100 * time.Millisecond}
	assert.Equal(t, GestureClose, f.nav.HandleGesture(down))
	assert.False(t, f.nav.IsOpen())
}

func TestTracker(t *testing.T) {
	var tr Tracker
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, ok := tr.Release(Point{1, 1}, start)
	assert.False(t, ok)

	tr.Press(Point{2, 3}, start)
	assert.True(t, tr.Active())
	g, ok := tr.Release(Point{20, 3}, start.Add(150*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, Gesture{Start: Point{2, 3}, End: Point{20, 3}, Duration: 150 * time.Millisecond}, g)
	assert.False(t, tr.Active())
}
