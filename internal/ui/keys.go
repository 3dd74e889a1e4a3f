package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings for the short help line and the help pager.
// Dispatch itself happens in the input modes.
type keyMap struct {
	Move     key.Binding
	Page     key.Binding
	Ends     key.Binding
	Open     key.Binding
	Search   key.Binding
	Category key.Binding
	Sort     key.Binding
	Order    key.Binding
	Clear    key.Binding
	View     key.Binding
	Theme    key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding

	ViewerPrev  key.Binding
	ViewerNext  key.Binding
	ViewerEnds  key.Binding
	ViewerClose key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:     key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↓↑→/hjkl", "move")),
		Page:     key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		Ends:     key.NewBinding(key.WithKeys("home", "end", "g", "G"), key.WithHelp("g/G", "first/last")),
		Open:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category: key.NewBinding(key.WithKeys("c", "C"), key.WithHelp("c/C", "category")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Order:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		View:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		ViewerPrev:  key.NewBinding(key.WithKeys("left", "h", "backspace"), key.WithHelp("←/backspace", "previous")),
		ViewerNext:  key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/space", "next")),
		ViewerEnds:  key.NewBinding(key.WithKeys("home", "end"), key.WithHelp("home/end", "first/last")),
		ViewerClose: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.Category, k.Sort, k.View, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Page, k.Ends, k.Open},
		{k.Search, k.Category, k.Sort, k.Order, k.Clear},
		{k.View, k.Theme, k.Reload, k.Help, k.Quit},
		{k.ViewerPrev, k.ViewerNext, k.ViewerEnds, k.ViewerClose},
	}
}

// viewerKeys is the key map shown while the viewer is open
type viewerKeys struct{ keyMap }

func (k viewerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.ViewerPrev, k.ViewerNext, k.ViewerEnds, k.ViewerClose}
}
