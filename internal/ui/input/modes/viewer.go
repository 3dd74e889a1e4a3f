package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"picgrid/internal/ui/input/types"
)

// ViewerMode routes keys to the full-screen viewer
type ViewerMode struct{}

func NewViewerMode() *ViewerMode {
	return &ViewerMode{}
}

func (m *ViewerMode) Name() string {
	return "viewer"
}

func (m *ViewerMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ViewerMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ViewerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "q":
		return []types.Action{types.ViewerKeyAction{Key: "esc"}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "t":
		return []types.Action{types.ToggleThemeAction{}}, true
	case "h":
		return []types.Action{types.ViewerKeyAction{Key: "left"}}, true
	case "l":
		return []types.Action{types.ViewerKeyAction{Key: "right"}}, true
	}
	if !ctx.ViewerOpen() {
		return nil, false
	}
	return []types.Action{types.ViewerKeyAction{Key: msg.String()}}, true
}
