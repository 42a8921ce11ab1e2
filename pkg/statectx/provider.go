package statectx

import (
	"sync/atomic"

	"github.com/vango-dev/statectx/internal/errors"
	"github.com/vango-dev/statectx/pkg/reactive"
	"github.com/vango-dev/statectx/pkg/vdom"
)

// Provider returns a component node that owns one live state and
// publishes its snapshot to descendants.
func (c *Context[S, A]) Provider(children Children[S]) *vdom.VNode {
	return vdom.Comp(&provider[S, A]{ctx: c, children: children})
}

// ProviderKey is Provider with a reconciliation key. Siblings with
// distinct keys keep distinct state when reordered.
func (c *Context[S, A]) ProviderKey(key string, children Children[S]) *vdom.VNode {
	return vdom.Comp(&provider[S, A]{ctx: c, children: children}, key)
}

// Wrap is Provider(Static(children...)).
func (c *Context[S, A]) Wrap(children ...any) *vdom.VNode {
	return c.Provider(Static[S](children...))
}

type provider[S, A any] struct {
	ctx      *Context[S, A]
	children Children[S]
}

// Render implements vdom.Component.
func (p *provider[S, A]) Render() *vdom.VNode {
	st := p.ctx.mount()
	p.ctx.handle.Provide(st)
	return p.children.build(func() S {
		return st.snapshot.Get().State
	})
}

// providerState is the per-instance state of a mounted provider. It lives
// in a hook slot, so re-renders of the provider see the same value.
type providerState[S, A any] struct {
	ctx *Context[S, A]

	state    *reactive.Signal[S]
	snapshot *reactive.Memo[*Snapshot[S, A]]
	setter   *setter[S, A]

	revision atomic.Uint64
	reported uint64
}

// mount returns the provider state of the rendering owner, creating it on
// the first render. Without an owner each call gets a fresh state.
func (c *Context[S, A]) mount() *providerState[S, A] {
	owner := reactive.CurrentOwner()
	if owner == nil {
		return c.newProviderState(nil)
	}

	st, ok := owner.UseHookSlot().(*providerState[S, A])
	if !ok {
		if owner.Renders() > 0 {
			panic("statectx: hook slot type mismatch for provider state")
		}
		st = c.newProviderState(reactive.UseCtx())
		owner.SetHookSlot(st)
		owner.OnCleanup(st.unmount)
		c.observer.ProviderMounted(c.schema.Name)
		c.logger.Debug("provider mounted", "owner", owner.ID())
	}
	reactive.CreateEffect(st.reportCommit)
	return st
}

func (c *Context[S, A]) newProviderState(host reactive.Ctx) *providerState[S, A] {
	st := &providerState[S, A]{ctx: c}
	st.setter = &setter[S, A]{st: st, host: host}

	// Built without an owner so they do not take the provider's hook slots.
	reactive.WithOwner(nil, func() {
		st.state = reactive.NewSignal(c.schema.Initial)
		if c.schema.Equal != nil {
			st.state.WithEquals(c.schema.Equal)
		} else {
			st.state.WithEquals(func(S, S) bool { return false })
		}

		st.snapshot = reactive.NewMemo(func() *Snapshot[S, A] {
			state := st.state.Get()
			return &Snapshot[S, A]{
				State:    state,
				Actions:  c.schema.Actions(state, st.setter),
				Revision: st.revision.Load(),
			}
		})
	})
	return st
}

// commit applies fn to the current state. Skipped commits, those Equal
// reports unchanged, leave the revision alone.
func (st *providerState[S, A]) commit(fn func(S) S) {
	if st.setter.closed.Load() {
		st.dropped()
		return
	}
	equal := st.ctx.schema.Equal
	st.state.Update(func(cur S) S {
		next := fn(cur)
		if equal == nil || !equal(cur, next) {
			st.revision.Add(1)
		}
		return next
	})
}

// reportCommit runs as an effect after the renders a commit caused.
func (st *providerState[S, A]) reportCommit() reactive.Cleanup {
	rev := st.snapshot.Get().Revision
	if rev > st.reported {
		st.reported = rev
		st.ctx.observer.StateCommitted(st.ctx.schema.Name, rev)
		st.ctx.logger.Debug("state committed", "revision", rev)
	}
	return nil
}

func (st *providerState[S, A]) unmount() {
	st.setter.closed.Store(true)
	st.ctx.observer.ProviderUnmounted(st.ctx.schema.Name)
	st.ctx.logger.Debug("provider unmounted", "revision", st.revision.Load())
}

func (st *providerState[S, A]) dropped() {
	st.ctx.observer.WriteDropped(st.ctx.schema.Name)
	st.ctx.logger.Debug("write dropped", "error", errors.New(errors.CodeStaleWrite))
}
