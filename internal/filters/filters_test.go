package filters

import (
	"testing"

	"picgrid/internal/domain"
	"picgrid/internal/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func img(id, filename, category, date string, tags ...string) domain.Image {
	return domain.Image{
		ID:        id,
		Filename:  filename,
		Path:      "images/" + filename,
		Category:  category,
		DateAdded: date,
		Tags:      tags,
	}
}

func names(images []domain.Image) []string {
	out := make([]string, len(images))
	for i, im := range images {
		out[i] = im.Filename
	}
	return out
}

func newState(t *testing.T, bus eventbus.EventBus) *FilterState {
	t.Helper()
	f, err := New(&domain.GalleryData{Images: []domain.Image{}, Categories: []string{}}, bus)
	require.NoError(t, err)
	return f
}

func sample() []domain.Image {
	beach := img("1", "Beach.jpg", "nature", "2024-03-01", "sea", "sand")
	beach.Description = domain.StringPtr("Red sunset over the bay")
	return []domain.Image{
		beach,
		img("2", "car.png", "vehicles", "2023-12-24", "red", "fast"),
		img("3", "forest.jpg", "nature", "2024-01-15", "trees"),
		img("4", "apple.jpg", "food", "not a date", "fruit", "red"),
	}
}

func TestNewFailsFastWithoutData(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = New(&domain.GalleryData{Categories: []string{}}, nil)
	assert.ErrorIs(t, err, ErrNoImages)

	_, err = New(&domain.GalleryData{Images: []domain.Image{}}, nil)
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestSetSearchNormalizes(t *testing.T) {
	f := newState(t, nil)
	f.SetSearch("  Red CAR ")
	assert.Equal(t, "red car", f.Criteria().SearchTerm)

	f.SetSearch("   ")
	assert.Empty(t, f.Criteria().SearchTerm)
}

func TestSetSortLeniency(t *testing.T) {
	f := newState(t, nil)

	f.SetSort("bogus", "")
	assert.Equal(t, SortByName, f.Criteria().SortKey)
	assert.Equal(t, Asc, f.Criteria().SortOrder)

	f.SetSort("date", "sideways")
	assert.Equal(t, SortByDate, f.Criteria().SortKey)
	assert.Equal(t, Asc, f.Criteria().SortOrder)

	f.SetSort("category", "desc")
	assert.Equal(t, SortByCategory, f.Criteria().SortKey)
	assert.Equal(t, Desc, f.Criteria().SortOrder)
}

func TestSearchConjunction(t *testing.T) {
	f := newState(t, nil)
	images := sample()

	f.SetSearch("red car")
	assert.Equal(t, []string{"car.png"}, names(f.Apply(images)))

	// each sub-term alone
	for _, im := range images {
		both := Matches(im, "red") && Matches(im, "car")
		assert.Equal(t, both, Matches(im, "red car"), im.Filename)
	}

	// sub-terms may hit different fields: description and category
	f.SetSearch("sunset nature")
	assert.Equal(t, []string{"Beach.jpg"}, names(f.Apply(images)))
}

func TestSearchSubstringNotToken(t *testing.T) {
	f := newState(t, nil)
	f.SetSearch("fru")
	assert.Equal(t, []string{"apple.jpg"}, names(f.Apply(sample())))
}

func TestCategoryFilterWithNoMatchesIsEmpty(t *testing.T) {
	f := newState(t, nil)
	f.SetCategory("abstract")
	result := f.Apply(sample())
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	f := newState(t, nil)
	images := sample()
	before := names(images)

	f.SetSort("name", "desc")
	f.Apply(images)

	assert.Equal(t, before, names(images))
}

func TestApplyIsIdempotent(t *testing.T) {
	f := newState(t, nil)
	images := sample()

	for _, key := range SortKeys() {
		for _, order := range []string{"asc", "desc"} {
			f.SetSort(string(key), order)
			once := f.Apply(images)
			assert.Equal(t, once, f.Apply(once), "%s %s", key, order)
		}
	}
}

func TestNameSortIsCaseInsensitive(t *testing.T) {
	f := newState(t, nil)
	f.SetSort("name", "asc")
	assert.Equal(t, []string{"apple.jpg", "Beach.jpg", "car.png", "forest.jpg"}, names(f.Apply(sample())))
}

func TestCategorySortIsStable(t *testing.T) {
	f := newState(t, nil)
	images := []domain.Image{
		img("1", "z.jpg", "nature", ""),
		img("2", "b.jpg", "art", ""),
		img("3", "a.jpg", "nature", ""),
	}

	f.SetSort("category", "asc")
	assert.Equal(t, []string{"b.jpg", "z.jpg", "a.jpg"}, names(f.Apply(images)))

	// ties keep input order in desc too
	f.SetSort("category", "desc")
	assert.Equal(t, []string{"z.jpg", "a.jpg", "b.jpg"}, names(f.Apply(images)))
}

func TestSortOrderSymmetry(t *testing.T) {
	f := newState(t, nil)
	images := sample()

	for _, key := range []string{"name", "date"} {
		f.SetSort(key, "asc")
		asc := names(f.Apply(images))
		f.SetSort(key, "desc")
		desc := names(f.Apply(images))

		reversed := make([]string, len(asc))
		for i := range asc {
			reversed[len(asc)-1-i] = asc[i]
		}
		assert.Equal(t, reversed, desc, key)
	}
}

func TestNameThenDateScenario(t *testing.T) {
	f := newState(t, nil)
	images := []domain.Image{
		img("1", "b.jpg", "x", "2024-01-01"),
		img("2", "a.jpg", "x", "2024-02-01"),
	}

	f.SetSort("name", "")
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names(f.Apply(images)))

	f.SetSort("date", "")
	assert.Equal(t, []string{"b.jpg", "a.jpg"}, names(f.Apply(images)))
}

func TestInvalidDateSortsAsEpoch(t *testing.T) {
	f := newState(t, nil)
	f.SetSort("date", "asc")
	result := names(f.Apply(sample()))
	assert.Equal(t, "apple.jpg", result[0])
	assert.Equal(t, "Beach.jpg", result[len(result)-1])
}

func TestParseDateLayouts(t *testing.T) {
	assert.Equal(t, 2024, ParseDate("2024-05-06").Year())
	assert.Equal(t, 7, ParseDate("2024-05-06T07:08:09Z").Hour())
	assert.Equal(t, 7, ParseDate("2024-05-06T07:08:09").Hour())
	assert.Equal(t, 7, ParseDate("2024-05-06 07:08:09").Hour())
	assert.Equal(t, int64(0), ParseDate("").Unix())
	assert.Equal(t, int64(0), ParseDate("yesterday").Unix())
}

func TestStateRoundTripWithDefaults(t *testing.T) {
	f := newState(t, nil)
	f.SetState(State{SearchTerm: "Beach"})

	assert.Equal(t, State{
		SearchTerm:       "beach",
		SelectedCategory: "",
		SortBy:           "name",
		SortOrder:        "asc",
	}, f.GetState())

	want := State{SearchTerm: "sea", SelectedCategory: "nature", SortBy: "date", SortOrder: "desc"}
	f.SetState(want)
	assert.Equal(t, want, f.GetState())
}

func TestEverySetterPublishes(t *testing.T) {
	bus := eventbus.New()
	var states []State
	bus.Subscribe(eventbus.EventFiltersChanged, func(e eventbus.DomainEvent) {
		states = append(states, e.(eventbus.FiltersChangedEvent).State)
	})

	f := newState(t, bus)
	f.SetSearch("x")
	f.SetCategory("nature")
	f.SetSort("date", "desc")
	f.SetState(State{})
	f.CycleSort()
	f.ToggleOrder()
	f.CycleCategory([]string{"nature"}, 1)

	require.Len(t, states, 7)
	assert.Equal(t, "nature", states[1].SelectedCategory)
	assert.Equal(t, "date", states[2].SortBy)
	assert.Equal(t, "name", states[3].SortBy)
}

func TestCycleHelpers(t *testing.T) {
	f := newState(t, nil)
	cats := []string{"food", "nature"}

	f.CycleCategory(cats, 1)
	assert.Equal(t, "food", f.Criteria().Category)
	f.CycleCategory(cats, 1)
	assert.Equal(t, "nature", f.Criteria().Category)
	f.CycleCategory(cats, 1)
	assert.Equal(t, "", f.Criteria().Category)
	f.CycleCategory(cats, -1)
	assert.Equal(t, "nature", f.Criteria().Category)

	f.CycleSort()
	assert.Equal(t, SortByDate, f.Criteria().SortKey)
	f.CycleSort()
	f.CycleSort()
	assert.Equal(t, SortByName, f.Criteria().SortKey)

	f.ToggleOrder()
	assert.Equal(t, Desc, f.Criteria().SortOrder)
	f.ToggleOrder()
	assert.Equal(t, Asc, f.Criteria().SortOrder)
}

func TestResetRestoresDefaults(t *testing.T) {
	bus := eventbus.New()
	published := 0
	bus.Subscribe(eventbus.EventFiltersChanged, func(eventbus.DomainEvent) { published++ })

	f := newState(t, bus)
	f.SetSearch("sun")
	f.SetCategory("nature")
	f.SetSort("date", "desc")
	f.Reset()

	assert.Equal(t, DefaultCriteria(), f.Criteria())
	assert.Equal(t, 4, published)
}
