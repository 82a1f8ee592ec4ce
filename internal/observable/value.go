// Package observable holds a single value and pushes every write to its
// subscribers.
package observable

// Subscription identifies one registered callback.
type Subscription uint64

type subscriber[T any] struct {
	id Subscription
	fn func(T)
}

// Value is a current value plus an ordered set of callbacks.
//
// Value does no locking. The owner serializes Get, Set, Subscribe and
// Unsubscribe.
type Value[T any] struct {
	current T
	subs    []subscriber[T]
	nextID  Subscription
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

func (v *Value[T]) Get() T {
	return v.current
}

// Set replaces the current value and notifies every subscriber in
// registration order, even if the value did not change.
func (v *Value[T]) Set(next T) {
	v.current = next
	// a callback may subscribe or unsubscribe; this round uses the list as it was
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	for _, s := range subs {
		s.fn(next)
	}
}

// Subscribe registers fn and calls it immediately with the current value.
func (v *Value[T]) Subscribe(fn func(T)) Subscription {
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	fn(v.current)
	return id
}

// Unsubscribe reports whether id was registered.
func (v *Value[T]) Unsubscribe(id Subscription) bool {
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered subscribers.
func (v *Value[T]) Len() int {
	return len(v.subs)
}
