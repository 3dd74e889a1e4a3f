package filters

import (
	"strings"

	"picgrid/internal/domain"
)

// SortKey selects the comparator used by Apply
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByDate     SortKey = "date"
	SortByCategory SortKey = "category"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Defaults applied to missing or unrecognized values
const (
	DefaultSortKey   = SortByName
	DefaultSortOrder = Asc
)

var sortKeys = []SortKey{SortByName, SortByDate, SortByCategory}

// SortKeys lists the recognized sort keys in selector order
func SortKeys() []SortKey {
	out := make([]SortKey, len(sortKeys))
	copy(out, sortKeys)
	return out
}

// ParseSortKey maps unknown keys to name
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByDate:
		return SortByDate
	case SortByCategory:
		return SortByCategory
	default:
		return SortByName
	}
}

// ParseSortOrder maps empty or unknown orders to asc
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == Desc {
		return Desc
	}
	return Asc
}

// Criteria is the normalized filter configuration
type Criteria struct {
	SearchTerm string
	Category   string
	SortKey    SortKey
	SortOrder  SortOrder
}

// DefaultCriteria returns criteria that keep every image in name order
func DefaultCriteria() Criteria {
	return Criteria{SortKey: DefaultSortKey, SortOrder: DefaultSortOrder}
}

// NormalizeSearch lowercases and trims a search term
func NormalizeSearch(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// State is the exported form of Criteria
type State = domain.FilterSnapshot

func (c Criteria) state() State {
	return State{
		SearchTerm:       c.SearchTerm,
		SelectedCategory: c.Category,
		SortBy:           string(c.SortKey),
		SortOrder:        string(c.SortOrder),
	}
}

func criteriaFromState(s State) Criteria {
	return Criteria{
		SearchTerm: NormalizeSearch(s.SearchTerm),
		Category:   s.SelectedCategory,
		SortKey:    ParseSortKey(s.SortBy),
		SortOrder:  ParseSortOrder(s.SortOrder),
	}
}
