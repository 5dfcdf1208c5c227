package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted before a Flush are
// delivered by that Flush; events emitted by handlers during a Flush wait
// for the next one.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	known    map[reflect.Type]bool
	order    []reflect.Type // order of first emission, for deterministic delivery
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		known:    make(map[reflect.Type]bool),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if !b.known[t] {
		b.known[t] = true
		b.order = append(b.order, t)
	}
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Pending returns the number of events waiting for the next Flush.
func (b *Bus) Pending() int {
	n := 0
	for _, events := range b.back {
		n += len(events)
	}
	return n
}

// Flush rotates back→front and delivers every front-buffer event to its
// subscribed handlers. Returns the number of events delivered.
func (b *Bus) Flush() int {
	b.swapBuffers()
	return b.dispatchAll()
}

func (b *Bus) swapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

func (b *Bus) dispatchAll() int {
	delivered := 0
	for _, t := range b.order {
		events := b.front[t]
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				// Subscribe and Emit use the same type key.
				callHandler(h, ev)
			}
		}
		delivered += len(events)
		b.front[t] = events[:0]
	}
	return delivered
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
