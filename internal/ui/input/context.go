package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Focus  int
	Count  int
	Viewer bool
	Term   string
}

// FocusIndex returns the focused card
func (c *ModelContext) FocusIndex() int {
	return c.Focus
}

// CardCount returns the number of rendered cards
func (c *ModelContext) CardCount() int {
	return c.Count
}

// ViewerOpen reports whether the full-screen viewer is showing
func (c *ModelContext) ViewerOpen() bool {
	return c.Viewer
}

// SearchTerm returns the applied search term
func (c *ModelContext) SearchTerm() string {
	return c.Term
}
