package app

import "net/url"

// Location mirrors the filter criteria as a query string, the way a page
// URL would. Replace overwrites the current entry rather than adding one.
type Location struct {
	query    url.Values
	replaces int
}

// NewLocation starts at initial
func NewLocation(initial url.Values) *Location {
	return &Location{query: cloneValues(initial)}
}

// Replace sets the query
func (l *Location) Replace(q url.Values) {
	l.query = cloneValues(q)
	l.replaces++
}

// Query returns a copy of the query
func (l *Location) Query() url.Values {
	return cloneValues(l.query)
}

// Replaces counts Replace calls
func (l *Location) Replaces() int {
	return l.replaces
}

// String returns "?search=..." or "" when the query is empty
func (l *Location) String() string {
	encoded := l.query.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
