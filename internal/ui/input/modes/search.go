package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"picgrid/internal/ui/input/types"
)

// SearchMode edits the search term. Every keystroke is reported so the
// gallery can filter while typing.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
