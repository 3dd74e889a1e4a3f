package filters

import (
	"errors"

	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
)

var (
	// ErrNoData is returned when FilterState is built without a data snapshot
	ErrNoData = errors.New("filters: gallery data is required")
	// ErrNoImages is returned when the data snapshot has no images sequence
	ErrNoImages = errors.New("filters: gallery data has no images")
	// ErrNoCategories is returned when the data snapshot has no categories sequence
	ErrNoCategories = errors.New("filters: gallery data has no categories")
)

// Option configures a FilterState
type Option func(*FilterState)

// WithLocale sets the collation locale used for name and category sorting
func WithLocale(locale string) Option {
	return func(f *FilterState) {
		if locale != "" {
			f.locale = locale
		}
	}
}

// WithCriteria seeds the initial criteria without publishing
func WithCriteria(c Criteria) Option {
	return func(f *FilterState) {
		f.criteria = criteriaFromState(c.state())
	}
}

// FilterState holds the search, category and sort criteria
type FilterState struct {
	criteria Criteria
	locale   string
	bus      eventbus.EventBus
}

// New creates a filter state. data must carry both images and categories.
func New(data *domain.GalleryData, bus eventbus.EventBus, opts ...Option) (*FilterState, error) {
	if data == nil {
		return nil, ErrNoData
	}
	if data.Images == nil {
		return nil, ErrNoImages
	}
	if data.Categories == nil {
		return nil, ErrNoCategories
	}

	f := &FilterState{
		criteria: DefaultCriteria(),
		locale:   "en",
		bus:      eventbus.OrNull(bus),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// SetSearch sets the search term. An empty term clears the filter.
func (f *FilterState) SetSearch(term string) {
	f.criteria.SearchTerm = NormalizeSearch(term)
	f.publish()
}

// SetCategory sets the exact-match category. Empty means all categories.
func (f *FilterState) SetCategory(category string) {
	f.criteria.Category = category
	f.publish()
}

// SetSort sets the sort key and order. Unknown keys fall back to name,
// empty or unknown orders to asc.
func (f *FilterState) SetSort(key, order string) {
	f.criteria.SortKey = ParseSortKey(key)
	f.criteria.SortOrder = ParseSortOrder(order)
	f.publish()
}

// CycleCategory steps through "" followed by categories, wrapping at both ends
func (f *FilterState) CycleCategory(categories []string, step int) {
	options := append([]string{""}, categories...)
	current := 0
	for i, c := range options {
		if c == f.criteria.Category {
			current = i
			break
		}
	}
	next := ((current+step)%len(options) + len(options)) % len(options)
	f.SetCategory(options[next])
}

// CycleSort moves to the next sort key, keeping the order
func (f *FilterState) CycleSort() {
	current := 0
	for i, k := range sortKeys {
		if k == f.criteria.SortKey {
			current = i
			break
		}
	}
	next := sortKeys[(current+1)%len(sortKeys)]
	f.SetSort(string(next), string(f.criteria.SortOrder))
}

// ToggleOrder flips between asc and desc
func (f *FilterState) ToggleOrder() {
	order := Desc
	if f.criteria.SortOrder == Desc {
		order = Asc
	}
	f.SetSort(string(f.criteria.SortKey), string(order))
}

// Reset restores the default criteria
func (f *FilterState) Reset() {
	f.criteria = DefaultCriteria()
	f.publish()
}

// Criteria returns the current criteria
func (f *FilterState) Criteria() Criteria {
	return f.criteria
}

// Locale returns the collation locale
func (f *FilterState) Locale() string {
	return f.locale
}

// Apply filters and sorts images without touching the input slice.
// Search runs first, then category, then a stable sort on the copy.
func (f *FilterState) Apply(images []domain.Image) []domain.Image {
	return ApplyCriteria(images, f.criteria, f.locale)
}

// ApplyCriteria is Apply for an explicit criteria value
func ApplyCriteria(images []domain.Image, c Criteria, locale string) []domain.Image {
	out := make([]domain.Image, 0, len(images))
	for _, img := range images {
		if !Matches(img, c.SearchTerm) {
			continue
		}
		if c.Category != "" && img.Category != c.Category {
			continue
		}
		out = append(out, img)
	}
	sortImages(out, c.SortKey, c.SortOrder, locale)
	return out
}

// GetState exports the criteria
func (f *FilterState) GetState() State {
	return f.criteria.state()
}

// SetState imports criteria, defaulting any missing field
func (f *FilterState) SetState(s State) {
	f.criteria = criteriaFromState(s)
	f.publish()
}

func (f *FilterState) publish() {
	f.bus.Publish(domain.FiltersChangedEvent{State: f.GetState()})
}
