// Package stream provides the minimal reactive primitives the board is built
// on: a hot, replay-1 multicast value and derived values computed from one or
// two upstreams with equality-gated notification. No general dataflow
// framework is involved; the dependency graph stays explicit.
package stream

import "sync"

// Source is anything that holds a current value and pushes changes to
// subscribers.
type Source[T any] interface {
	// Get returns the current value
	Get() T
	// Subscribe registers fn, synchronously delivers the current value, and
	// returns a cancel that removes the subscription. Cancel is idempotent.
	// fn must not call back into the source it is subscribed to.
	Subscribe(fn func(T)) (cancel func())
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subject is a hot, replay-1 multicast value: it remembers the most recent
// value and hands it to every new subscriber before any later change. When an
// equality function is configured, publishing a value equal to the current
// one notifies nobody.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	eq     func(T, T) bool
	subs   []subscriber[T]
	nextID int
}

// NewSubject returns a subject seeded with initial. eq may be nil, in which
// case every Set notifies.
func NewSubject[T any](initial T, eq func(T, T) bool) *Subject[T] {
	return &Subject[T]{value: initial, eq: eq}
}

// Get returns the current value
func (s *Subject[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set publishes v to all current subscribers in subscription order.
// Subscribers run synchronously; Set returns only after every one has seen v.
func (s *Subject[T]) Set(v T) {
	s.mu.Lock()
	if s.eq != nil && s.eq(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and synchronously delivers the current value.
// The replay runs before the lock is released so a Set racing the
// registration cannot slip its newer value in ahead of the stale replay.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	fn(s.value)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount reports how many subscriptions are live
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Derived is a subject whose value is recomputed from upstream sources.
// Close releases its upstream subscriptions; the derived value stops
// updating but its own subscribers are left attached.
type Derived[T any] struct {
	*Subject[T]
	cancels []func()
}

// Close cancels every upstream subscription held by this derived value
func (d *Derived[T]) Close() {
	for _, cancel := range d.cancels {
		cancel()
	}
	d.cancels = nil
}

// AddCleanup registers extra cancels to run on Close. Used when a derived
// value is built from intermediate derivations that must be torn down with it.
func (d *Derived[T]) AddCleanup(fns ...func()) {
	d.cancels = append(d.cancels, fns...)
}

// Map derives a value by applying f to every emission of src. The result is
// computed once synchronously before Map returns, so the derived value is
// never observed unset. Emissions equal under eq are suppressed.
func Map[A, B any](src Source[A], f func(A) B, eq func(B, B) bool) *Derived[B] {
	var zero B
	out := NewSubject(zero, eq)
	cancel := src.Subscribe(func(a A) {
		out.Set(f(a))
	})
	return &Derived[B]{Subject: out, cancels: []func(){cancel}}
}

// Combine derives a value from the latest values of two independent sources.
// It recomputes on notification from either dependency, caches the output,
// and only notifies its own subscribers when the output actually changed
// under eq.
func Combine[A, B, C any](a Source[A], b Source[B], f func(A, B) C, eq func(C, C) bool) *Derived[C] {
	var zero C
	out := NewSubject(zero, eq)

	// Latest upstream values are tracked here rather than read back with
	// Get, because the replay in Subscribe holds the source's lock while
	// the callback runs.
	var (
		mu sync.Mutex
		la A
		lb B
	)
	cancelA := a.Subscribe(func(v A) {
		mu.Lock()
		la = v
		va, vb := la, lb
		mu.Unlock()
		out.Set(f(va, vb))
	})
	cancelB := b.Subscribe(func(v B) {
		mu.Lock()
		lb = v
		va, vb := la, lb
		mu.Unlock()
		out.Set(f(va, vb))
	})
	return &Derived[C]{Subject: out, cancels: []func(){cancelA, cancelB}}
}
