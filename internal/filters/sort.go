package filters

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"picgrid/internal/domain"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses DateAdded. Missing or invalid dates sort as the Unix epoch.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Unix(0, 0).UTC()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

type comparator func(a, b domain.Image) int

func newComparator(key SortKey, locale string) comparator {
	switch key {
	case SortByDate:
		return func(a, b domain.Image) int {
			return ParseDate(a.DateAdded).Compare(ParseDate(b.DateAdded))
		}
	case SortByCategory:
		col := newCollator(locale)
		return func(a, b domain.Image) int {
			return col.CompareString(a.Category, b.Category)
		}
	default:
		col := newCollator(locale)
		return func(a, b domain.Image) int {
			return col.CompareString(a.Filename, b.Filename)
		}
	}
}

func newCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}

// sortImages sorts images in place. Desc negates the comparison rather than
// swapping operands so ties keep input order in both directions.
func sortImages(images []domain.Image, key SortKey, order SortOrder, locale string) {
	cmp := newComparator(key, locale)
	sign := 1
	if order == Desc {
		sign = -1
	}
	sort.SliceStable(images, func(i, j int) bool {
		return sign*cmp(images[i], images[j]) < 0
	})
}
