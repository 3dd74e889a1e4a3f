package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCardActivated   EventType = "card-activated"
	EventModalNavigated  EventType = "modal-navigated"
	EventModalOpened     EventType = "modal-opened"
	EventModalClosed     EventType = "modal-closed"
	EventViewChanged     EventType = "view-changed"
	EventThemeChanged    EventType = "theme-changed"
	EventFiltersChanged  EventType = "filters-changed"
	EventGalleryRendered EventType = "gallery-rendered"
	EventConfigLoaded    EventType = "config-loaded"
	EventError           EventType = "error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CardActivatedEvent is emitted when a card is clicked or activated from the keyboard.
// FullList is the list currently rendered, not the unfiltered master list.
type CardActivatedEvent struct {
	Index    int
	Image    Image
	FullList []Image
}

func (e CardActivatedEvent) Type() EventType { return EventCardActivated }

// ModalNavigatedEvent is emitted after the viewer moved to another image.
// Direction is +1 or -1 for relative moves and 0 for absolute jumps.
type ModalNavigatedEvent struct {
	Direction    int
	CurrentIndex int
	Image        Image
}

func (e ModalNavigatedEvent) Type() EventType { return EventModalNavigated }

// ModalOpenedEvent is emitted when the viewer opens
type ModalOpenedEvent struct {
	CurrentIndex int
	Count        int
}

func (e ModalOpenedEvent) Type() EventType { return EventModalOpened }

// ModalClosedEvent is emitted when the viewer closes
type ModalClosedEvent struct{}

func (e ModalClosedEvent) Type() EventType { return EventModalClosed }

// ViewChangedEvent is emitted when the gallery switches between grid and list
type ViewChangedEvent struct {
	ViewMode ViewMode
}

func (e ViewChangedEvent) Type() EventType { return EventViewChanged }

// ThemeChangedEvent is emitted whenever a theme is applied
type ThemeChangedEvent struct {
	Theme          ThemeMode
	EffectiveTheme ThemeMode
	Timestamp      time.Time
}

func (e ThemeChangedEvent) Type() EventType { return EventThemeChanged }

// FilterSnapshot mirrors the exported filter state
type FilterSnapshot struct {
	SearchTerm       string `json:"searchTerm"`
	SelectedCategory string `json:"selectedCategory"`
	SortBy           string `json:"sortBy"`
	SortOrder        string `json:"sortOrder"`
}

// FiltersChangedEvent is emitted after any filter setter ran
type FiltersChangedEvent struct {
	State FilterSnapshot
}

func (e FiltersChangedEvent) Type() EventType { return EventFiltersChanged }

// GalleryRenderedEvent is emitted after the gallery replaced its cards
type GalleryRenderedEvent struct {
	Count int
	Empty bool
}

func (e GalleryRenderedEvent) Type() EventType { return EventGalleryRendered }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
