package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily computed value that tracks the signals its computation
// reads. A change to any of them invalidates the memo and notifies the
// memo's own subscribers; the value is recomputed on the next read.
//
// A memo that is not invalidated keeps returning the very same value, so
// pointer-valued memos are stable between commits.
type Memo[T any] struct {
	src source

	compute func() T

	value   T
	valueMu sync.RWMutex
	valid   atomic.Bool

	sources   []*source
	sourcesMu sync.Mutex

	computing atomic.Bool
}

var _ dependent = (*Memo[int])(nil)

// NewMemo creates a memo over compute. Nothing runs until the first Get.
//
// Called during a component render, the memo lives in the owner's next
// hook slot; a re-render swaps in the new compute func and invalidates it.
func NewMemo[T any](compute func() T) *Memo[T] {
	owner := currentOwner()
	inRender := owner != nil && isInRender()
	if inRender {
		if slot := owner.UseHookSlot(); slot != nil {
			m, ok := slot.(*Memo[T])
			if !ok {
				panic("reactive: hook slot type mismatch for Memo")
			}
			m.compute = compute
			m.valid.Store(false)
			return m
		}
	}

	m := &Memo[T]{
		src:     source{id: nextID()},
		compute: compute,
	}
	if inRender {
		owner.SetHookSlot(m)
	}
	return m
}

// Get returns the value, recomputing if stale, and subscribes the current
// listener.
func (m *Memo[T]) Get() T {
	m.src.track()
	return m.Peek()
}

// Peek returns the value without subscribing. It still recomputes a stale
// memo.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// MarkDirty implements Listener.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.src.notify()
	}
}

// ID implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.src.id
}

func (m *Memo[T]) addSource(s *source) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, existing := range m.sources {
		if existing == s {
			return
		}
	}
	m.sources = append(m.sources, s)
}

func (m *Memo[T]) recompute() {
	// A memo reading itself would recurse forever; the inner read sees the
	// previous value instead.
	if m.computing.Swap(true) {
		return
	}
	defer m.computing.Store(false)

	m.sourcesMu.Lock()
	for _, s := range m.sources {
		s.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	var next T
	WithListener(m, func() {
		next = m.compute()
	})

	m.valueMu.Lock()
	m.value = next
	m.valueMu.Unlock()
	m.valid.Store(true)
}
