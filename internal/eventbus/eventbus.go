package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"picgrid/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCardActivated   = domain.EventCardActivated
	EventModalNavigated  = domain.EventModalNavigated
	EventModalOpened     = domain.EventModalOpened
	EventModalClosed     = domain.EventModalClosed
	EventViewChanged     = domain.EventViewChanged
	EventThemeChanged    = domain.EventThemeChanged
	EventFiltersChanged  = domain.EventFiltersChanged
	EventGalleryRendered = domain.EventGalleryRendered
	EventConfigLoaded    = domain.EventConfigLoaded
	EventError           = domain.EventError
)

// Re-export domain event types
type CardActivatedEvent = domain.CardActivatedEvent
type ModalNavigatedEvent = domain.ModalNavigatedEvent
type ModalOpenedEvent = domain.ModalOpenedEvent
type ModalClosedEvent = domain.ModalClosedEvent
type ViewChangedEvent = domain.ViewChangedEvent
type ThemeChangedEvent = domain.ThemeChangedEvent
type FiltersChangedEvent = domain.FiltersChangedEvent
type GalleryRenderedEvent = domain.GalleryRenderedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	token   uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Handlers run on the publisher's goroutine in subscription order.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	next     uint64
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish delivers an event to all current subscribers before returning
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}

	switch event.Type() {
	case EventModalNavigated, EventGalleryRendered:
		// Don't log these, they fire on every keypress
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Copy so handlers may subscribe or unsubscribe while we iterate
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.call(sub.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	token := b.next
	b.handlers[eventType] = append(b.handlers[eventType], subscription{token: token, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.token == token {
					kept := make([]subscription, 0, len(subs)-1)
					kept = append(kept, subs[:i]...)
					kept = append(kept, subs[i+1:]...)
					b.handlers[eventType] = kept
					break
				}
			}
		})
	}
}

// NullBus discards every event. Components built without a bus use it.
type NullBus struct{}

func (NullBus) Publish(DomainEvent) {}

func (NullBus) Subscribe(EventType, EventHandler) func() { return func() {} }

// OrNull returns b, or a NullBus when b is nil
func OrNull(b EventBus) EventBus {
	if b == nil {
		return NullBus{}
	}
	return b
}
