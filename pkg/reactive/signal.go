package reactive

import (
	"reflect"
	"sync"
)

// source is the subscriber list shared by Signal and Memo.
type source struct {
	id uint64

	subs  []Listener
	subMu sync.RWMutex
}

func (s *source) subscribe(l Listener) {
	if l == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

func (s *source) unsubscribe(l Listener) {
	if l == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// track subscribes the current listener, if any, and records this source on
// listeners that unsubscribe themselves before re-running.
func (s *source) track() {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if d, ok := l.(dependent); ok {
		d.addSource(s)
	}
}

// notify marks every subscriber dirty, or queues them inside a Batch.
// Subscribers are copied first so no lock is held while they run.
func (s *source) notify() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if st := lookupTracking(); st != nil && st.batchDepth > 0 {
		st.pending = append(st.pending, subs...)
		return
	}
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// subscriberCount is used by tests.
func (s *source) subscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// dependent is a listener that tracks the sources it read.
type dependent interface {
	Listener
	addSource(s *source)
}

// Signal is a reactive value container.
type Signal[T any] struct {
	src source

	value T
	mu    sync.RWMutex

	equal func(a, b T) bool
}

// NewSignal creates a signal holding initial.
//
// Called during a component render, the signal lives in the owner's next
// hook slot: later renders get the same signal back and initial is ignored.
func NewSignal[T any](initial T) *Signal[T] {
	owner := currentOwner()
	inRender := owner != nil && isInRender()
	if inRender {
		if slot := owner.UseHookSlot(); slot != nil {
			sig, ok := slot.(*Signal[T])
			if !ok {
				panic("reactive: hook slot type mismatch for Signal")
			}
			return sig
		}
	}

	sig := &Signal[T]{
		src:   source{id: nextID()},
		value: initial,
	}
	if inRender {
		owner.SetHookSlot(sig)
	}
	return sig
}

// Get returns the value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	v := s.value
	s.mu.RUnlock()

	s.src.track()
	return v
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies subscribers if it differs from the current one.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update replaces the value with fn(current) under the write lock.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.src.notify()
	}
}

// WithEquals replaces the change test used by Set and Update.
func (s *Signal[T]) WithEquals(fn func(a, b T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the signal's unique identifier.
func (s *Signal[T]) ID() uint64 {
	return s.src.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for the common scalar kinds and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case int64:
		bv, ok := any(b).(int64)
		return ok && av == bv
	case uint64:
		bv, ok := any(b).(uint64)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	default:
		return reflect.DeepEqual(a, b)
	}
}
