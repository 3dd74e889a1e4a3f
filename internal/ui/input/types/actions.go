package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ActivateAction opens the focused card in the viewer
type ActivateAction struct {
	Index int // -1 for the focused card
}

func (a ActivateAction) Type() string { return "activate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Seed text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Original string // Text the mode was entered with
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Filter actions
type CycleCategoryAction struct {
	Step int
}

func (a CycleCategoryAction) Type() string { return "cycle_category" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type ToggleOrderAction struct{}

func (a ToggleOrderAction) Type() string { return "toggle_order" }

type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// View actions
type ToggleViewAction struct{}

func (a ToggleViewAction) Type() string { return "toggle_view" }

type ToggleThemeAction struct{}

func (a ToggleThemeAction) Type() string { return "toggle_theme" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// ViewerKeyAction forwards a key to the open viewer
type ViewerKeyAction struct {
	Key string
}

func (a ViewerKeyAction) Type() string { return "viewer_key" }

// Command actions
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
