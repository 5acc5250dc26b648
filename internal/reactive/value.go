// Package reactive provides a small observable value container. Store
// packages publish their in-memory mirrors through it; UI code
// subscribes to re-render on change.
package reactive

import "sync"

// Value holds a single value of type T and notifies subscribers on every
// Set. Subscribers run synchronously, outside the internal lock.
type Value[T any] struct {
	mu   sync.Mutex
	v    T
	next int
	subs map[int]func(T)
}

// New returns a Value initialized to initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (val *Value[T]) Get() T {
	val.mu.Lock()
	defer val.mu.Unlock()
	return val.v
}

// Set replaces the current value and notifies all subscribers.
func (val *Value[T]) Set(v T) {
	val.mu.Lock()
	val.v = v
	subs := make([]func(T), 0, len(val.subs))
	for _, fn := range val.subs {
		subs = append(subs, fn)
	}
	val.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value and stores the result,
// notifying subscribers with the new value.
func (val *Value[T]) Update(fn func(T) T) {
	val.mu.Lock()
	val.v = fn(val.v)
	v := val.v
	subs := make([]func(T), 0, len(val.subs))
	for _, s := range val.subs {
		subs = append(subs, s)
	}
	val.mu.Unlock()

	for _, s := range subs {
		s(v)
	}
}

// Subscribe registers fn to be called with each new value. The returned
// cancel function removes the subscription.
func (val *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	val.mu.Lock()
	id := val.next
	val.next++
	val.subs[id] = fn
	val.mu.Unlock()

	return func() {
		val.mu.Lock()
		delete(val.subs, id)
		val.mu.Unlock()
	}
}
