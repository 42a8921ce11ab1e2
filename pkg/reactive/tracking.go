package reactive

import (
	"runtime"
	"sync"
)

// trackingState is the reactive state of one goroutine.
type trackingState struct {
	// owner receives primitives created and values provided right now.
	owner *Owner

	// listener is subscribed by signal and memo reads. nil disables tracking.
	listener Listener

	// batchDepth > 0 queues notifications instead of delivering them.
	batchDepth int
	pending    []Listener

	// renderDepth > 0 while a component render is on the stack.
	renderDepth int

	// ctx is the runtime context installed by the host (see WithCtx).
	ctx Ctx

	// scopes counts the With*, Batch, and Untracked calls on the stack.
	scopes int

	gid uint64
}

var trackingStates sync.Map // goroutine id -> *trackingState

// goroutineID parses the id out of the "goroutine N [" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func tracking() *trackingState {
	gid := goroutineID()
	if st, ok := trackingStates.Load(gid); ok {
		return st.(*trackingState)
	}
	st := &trackingState{gid: gid}
	trackingStates.Store(gid, st)
	return st
}

// lookupTracking returns the calling goroutine's state without creating
// one. Reads on a goroutine with no state see the zero state.
func lookupTracking() *trackingState {
	if st, ok := trackingStates.Load(goroutineID()); ok {
		return st.(*trackingState)
	}
	return nil
}

// enter opens a scope on the calling goroutine. Every enter is paired
// with leave.
func enter() *trackingState {
	st := tracking()
	st.scopes++
	return st
}

// leave closes a scope and drops the goroutine's state once nothing is
// left on it.
func leave(st *trackingState) {
	st.scopes--
	release(st)
}

func release(st *trackingState) {
	if st.scopes == 0 && st.idle() {
		trackingStates.CompareAndDelete(st.gid, st)
	}
}

func (st *trackingState) idle() bool {
	return st.owner == nil && st.listener == nil && st.ctx == nil &&
		st.batchDepth == 0 && len(st.pending) == 0 && st.renderDepth == 0
}

// ReleaseGoroutine drops the tracking state of the calling goroutine.
// State is dropped on its own when the last scope on a goroutine closes;
// loops that hold one open for their lifetime call this on exit.
func ReleaseGoroutine() {
	trackingStates.Delete(goroutineID())
}

func currentListener() Listener {
	if st := lookupTracking(); st != nil {
		return st.listener
	}
	return nil
}

func currentOwner() *Owner {
	if st := lookupTracking(); st != nil {
		return st.owner
	}
	return nil
}

func beginRender() {
	tracking().renderDepth++
}

func endRender() {
	st := lookupTracking()
	if st == nil {
		return
	}
	if st.renderDepth > 0 {
		st.renderDepth--
	}
	release(st)
}

func isInRender() bool {
	st := lookupTracking()
	return st != nil && st.renderDepth > 0
}

// WithOwner runs fn with owner as the current owner.
func WithOwner(owner *Owner, fn func()) {
	st := enter()
	old := st.owner
	st.owner = owner
	defer func() {
		st.owner = old
		leave(st)
	}()
	fn()
}

// WithListener runs fn with l subscribed to every signal fn reads.
func WithListener(l Listener, fn func()) {
	st := enter()
	old := st.listener
	st.listener = l
	defer func() {
		st.listener = old
		leave(st)
	}()
	fn()
}

// CurrentOwner returns the owner active on this goroutine, or nil.
func CurrentOwner() *Owner {
	return currentOwner()
}
