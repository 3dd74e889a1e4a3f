package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"picgrid/internal/ui/input/types"
)

// NormalMode browses the gallery
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter, tea.KeySpace:
		if ctx.CardCount() == 0 {
			return nil, false
		}
		return []types.Action{types.ActivateAction{Index: -1}}, true

	case tea.KeyEsc:
		// Esc clears an active search, otherwise does nothing
		if ctx.SearchTerm() == "" {
			return nil, false
		}
		return []types.Action{types.SubmitTextAction{Text: "", Mode: types.ModeSearch}}, true
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case "l":
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true

	case "c":
		return []types.Action{types.CycleCategoryAction{Step: 1}}, true

	case "C":
		return []types.Action{types.CycleCategoryAction{Step: -1}}, true

	case "s":
		return []types.Action{types.CycleSortAction{}}, true

	case "o":
		return []types.Action{types.ToggleOrderAction{}}, true

	case "x":
		return []types.Action{types.ClearFiltersAction{}}, true

	case "v":
		return []types.Action{types.ToggleViewAction{}}, true

	case "t":
		return []types.Action{types.ToggleThemeAction{}}, true

	case "r":
		return []types.Action{types.ReloadAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
