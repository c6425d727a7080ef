package event

import (
	"slices"
)

// Event is a single notification delivered to handlers.
type Event struct {
	// Payload is the value passed to [Bus.Emit].
	Payload any
	// Name is the name the event was emitted under.
	Name      string
	prevented bool
}

// PreventDefault marks the event as canceled. The emitter decides what
// canceling means.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// Prevented reports whether a handler canceled the event.
func (e *Event) Prevented() bool {
	return e.prevented
}

// Handler receives events.
type Handler func(e *Event)

type subscription struct {
	handler Handler
	id      uint64
}

// Bus delivers named events to subscribed handlers.
type Bus struct {
	handlers map[string][]subscription
	nextID   uint64
}

// NewBus creates a new [Bus].
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]subscription),
	}
}

// On subscribes h to events emitted under name. The returned function removes
// the subscription; calling it more than once is a no-op.
func (b *Bus) On(name string, h Handler) func() {
	b.nextID++
	id := b.nextID

	b.handlers[name] = append(b.handlers[name], subscription{id: id, handler: h})

	return func() {
		b.handlers[name] = slices.DeleteFunc(b.handlers[name], func(s subscription) bool {
			return s.id == id
		})
		if len(b.handlers[name]) == 0 {
			delete(b.handlers, name)
		}
	}
}

// Emit delivers payload to every handler subscribed to name, in subscription
// order. It returns false if any handler called [Event.PreventDefault].
//
// Handlers subscribed or removed during delivery do not affect the current
// delivery.
func (b *Bus) Emit(name string, payload any) bool {
	subs := slices.Clone(b.handlers[name])
	if len(subs) == 0 {
		return true
	}

	e := &Event{Name: name, Payload: payload}
	for _, s := range subs {
		s.handler(e)
	}

	return !e.prevented
}

// Has reports whether name has at least one subscriber.
func (b *Bus) Has(name string) bool {
	return len(b.handlers[name]) > 0
}

// Clear removes every subscription for name.
func (b *Bus) Clear(name string) {
	delete(b.handlers, name)
}
