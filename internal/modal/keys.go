package modal

// Key names as reported by the terminal layer
const (
	KeyEscape    = "esc"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeySpace     = " "
	KeyBackspace = "backspace"
)

// Key is a key press delivered to the viewer
type Key struct {
	Name        string
	Shift       bool
	InTextInput bool
}

// HandleKey applies the viewer key bindings and reports whether the key
// was consumed. Nothing is handled while a text input has focus.
func (n *Navigator) HandleKey(k Key) bool {
	if !n.isOpen || k.InTextInput {
		return false
	}
	switch k.Name {
	case KeyEscape:
		return n.Close()
	case KeyLeft:
		n.Navigate(-1)
	case KeyRight:
		n.Navigate(1)
	case KeyHome:
		n.GoToImage(0)
	case KeyEnd:
		n.GoToImage(len(n.images) - 1)
	case KeySpace, "space":
		if k.Shift {
			n.Navigate(-1)
		} else {
			n.Navigate(1)
		}
	case "shift+space", KeyBackspace:
		// Terminals rarely report shift with space
		n.Navigate(-1)
	default:
		return false
	}
	return true
}
