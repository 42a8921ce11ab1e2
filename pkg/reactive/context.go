package reactive

import "context"

// Ctx is the runtime context a host installs around renders, effects, and
// dispatched work.
type Ctx interface {
	// Dispatch queues fn on the host's update loop. It is safe to call from
	// any goroutine and is how asynchronous work commits state.
	Dispatch(fn func())

	// StdContext returns the standard context for outbound calls. It is
	// cancelled when the host shuts down.
	StdContext() context.Context
}

// UseCtx returns the Ctx installed on this goroutine, or nil outside a host.
func UseCtx() Ctx {
	if st := lookupTracking(); st != nil {
		return st.ctx
	}
	return nil
}

// WithCtx runs fn with c installed as the runtime context.
func WithCtx(c Ctx, fn func()) {
	st := enter()
	old := st.ctx
	st.ctx = c
	defer func() {
		st.ctx = old
		leave(st)
	}()
	fn()
}

// SetContext stores value under key on the current owner. Descendant
// owners see it through GetContext until they shadow the key themselves.
func SetContext(key, value any) {
	if owner := currentOwner(); owner != nil {
		owner.SetValue(key, value)
	}
}

// GetContext resolves key from the current owner upwards. It returns nil
// when no owner is active or no ancestor holds the key.
func GetContext(key any) any {
	if owner := currentOwner(); owner != nil {
		return owner.GetValue(key)
	}
	return nil
}
