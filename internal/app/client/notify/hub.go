// Package notify keeps a set of listeners and broadcasts values to them.
package notify

import (
	"sync"
)

type Hub[T any] struct {
	mu        sync.Mutex
	next      uint64
	listeners map[uint64]func(T)
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{listeners: make(map[uint64]func(T))}
}

// Subscribe registers fn and returns a function removing it.
// The returned function is safe to call more than once.
func (h *Hub[T]) Subscribe(fn func(T)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Publish calls every listener registered at the time of the call.
// Listeners may subscribe or unsubscribe from inside the callback.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	snapshot := make([]func(T), 0, len(h.listeners))
	for _, fn := range h.listeners {
		snapshot = append(snapshot, fn)
	}
	h.mu.Unlock()

	for _, fn := range snapshot {
		fn(v)
	}
}

func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
