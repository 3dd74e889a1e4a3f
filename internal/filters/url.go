package filters

import (
	"net/url"
	"strings"
)

// Query parameter names
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamSort     = "sort"
	ParamOrder    = "order"
)

// Query serializes the non-default criteria as query parameters
func (f *FilterState) Query() url.Values {
	return EncodeQuery(f.criteria)
}

// EncodeQuery serializes c, omitting parameters at their default value
func EncodeQuery(c Criteria) url.Values {
	v := url.Values{}
	if c.SearchTerm != "" {
		v.Set(ParamSearch, c.SearchTerm)
	}
	if c.Category != "" {
		v.Set(ParamCategory, c.Category)
	}
	if c.SortKey != "" && c.SortKey != DefaultSortKey {
		v.Set(ParamSort, string(c.SortKey))
	}
	if c.SortOrder != "" && c.SortOrder != DefaultSortOrder {
		v.Set(ParamOrder, string(c.SortOrder))
	}
	return v
}

// DecodeQuery reads criteria from query parameters, defaulting absent ones
func DecodeQuery(v url.Values) Criteria {
	return criteriaFromState(State{
		SearchTerm:       v.Get(ParamSearch),
		SelectedCategory: v.Get(ParamCategory),
		SortBy:           v.Get(ParamSort),
		SortOrder:        v.Get(ParamOrder),
	})
}

// RestoreQuery replaces the criteria with the ones encoded in v
func (f *FilterState) RestoreQuery(v url.Values) {
	f.SetState(DecodeQuery(v).state())
}

// ParseQuery accepts "search=x&sort=date", with or without a leading "?"
func ParseQuery(raw string) (url.Values, error) {
	return url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
}
