package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType identifies a kind of event on the bus.
type EventType string

// Event is the untyped envelope carried by the bus.
type Event struct {
	ctx  context.Context
	Type EventType
	Data any
}

// NewEvent wraps a payload for publishing. The context travels with the
// event so handlers can honor cancellation or detach from it explicitly.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{ctx: ctx, Type: eventType, Data: data}
}

// Context returns the context the event was published with.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the typed envelope handed to handlers registered via SubscribeTyped.
type EventT[T any] struct {
	ctx  context.Context
	Type EventType
	Data T
}

// Context returns the context the event was published with.
func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type handler func(Event) error

// EventBus dispatches events to subscribers synchronously, in registration
// order, on the publisher's goroutine. Safe for concurrent use.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
}

type subscription struct {
	id uint64
	h  handler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[EventType][]subscription)}
}

// Subscribe registers a handler for eventType and returns a function that
// removes it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	eb.handlers[eventType] = append(eb.handlers[eventType], subscription{id: id, h: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		subs := eb.handlers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				eb.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.handlers[eventType]) == 0 {
			delete(eb.handlers, eventType)
		}
	}
}

// SubscribeTyped registers a handler for a specific payload type. It is a free
// function because methods cannot carry their own type parameters. Events whose
// payload is not a T are skipped with a debug log rather than failing the
// publisher.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("event bus: %s payload is %T, handler wants %T", eventType, e.Data, *new(T))
			return nil
		}
		return h(EventT[T]{ctx: e.ctx, Type: e.Type, Data: payload})
	})
}

// Publish runs every handler registered for e.Type. A failing handler does not
// stop the others; all errors are joined into the returned error. A panicking
// handler is recovered and reported as an error.
func (eb *EventBus) Publish(e Event) error {
	eb.mu.RLock()
	subs := make([]subscription, len(eb.handlers[e.Type]))
	copy(subs, eb.handlers[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("event %s: context cancelled: %w", e.Type, err))
			break
		}
		if err := invoke(sub, e); err != nil {
			log.Errorf("event bus: handler %d for %s: %v", sub.id, e.Type, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func invoke(sub subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %d panicked on %s: %v", sub.id, e.Type, r)
		}
	}()
	return sub.h(e)
}
