package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when a signal or memo it read
// changes. Re-runs are scheduled on the owning Owner and executed by
// RunPendingEffects, never inline with the write that caused them.
type Effect struct {
	id uint64
	fn func() Cleanup

	cleanup Cleanup

	sources   []*source
	sourcesMu sync.Mutex

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool
}

var _ dependent = (*Effect)(nil)

// CreateEffect registers fn on the current owner.
//
// Outside a render fn runs immediately. During a render the first run is
// deferred until the host calls RunPendingEffects, so effects observe
// committed output; later renders reuse the effect from its hook slot and
// do not schedule it again.
func CreateEffect(fn func() Cleanup) *Effect {
	owner := currentOwner()
	inRender := owner != nil && isInRender()
	if inRender {
		if slot := owner.UseHookSlot(); slot != nil {
			e, ok := slot.(*Effect)
			if !ok {
				panic("reactive: hook slot type mismatch for Effect")
			}
			e.fn = fn
			return e
		}
	}

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner != nil {
		owner.registerEffect(e)
	}

	if inRender {
		owner.SetHookSlot(e)
		e.pending.Store(true)
		owner.scheduleEffect(e)
		return e
	}

	e.run()
	return e
}

// OnUnmount registers fn to run when the current owner is disposed.
func OnUnmount(fn func()) {
	if owner := currentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// MarkDirty implements Listener. Without an owner there is nobody to run
// the effect later, so it runs in place.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.owner == nil {
		e.run()
		return
	}
	e.owner.scheduleEffect(e)
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) addSource(s *source) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, existing := range e.sources {
		if existing == s {
			return
		}
	}
	e.sources = append(e.sources, s)
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, s := range e.sources {
		s.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	WithOwner(e.owner, func() {
		WithListener(e, func() {
			e.cleanup = e.fn()
		})
	})
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, s := range e.sources {
		s.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}
