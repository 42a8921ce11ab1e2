package host

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vango-dev/statectx/internal/errors"
	"github.com/vango-dev/statectx/pkg/reactive"
	"github.com/vango-dev/statectx/pkg/render"
	"github.com/vango-dev/statectx/pkg/vdom"
)

// Frame is delivered to subscribers after a flush that re-rendered part
// of the tree.
type Frame struct {
	// Seq counts frames, starting at 1.
	Seq uint64

	// HTML is the whole tree rendered after the flush.
	HTML string
}

// Root is a mounted component tree and its update loop.
//
// Flush, HTML, and Tree serialize on an internal lock. Dispatch may be
// called from any goroutine.
type Root struct {
	// ID identifies the root in logs.
	ID string

	logger    *slog.Logger
	maxPasses int

	owner *reactive.Owner
	top   *ComponentInstance
	tree  *vdom.VNode

	stdCtx context.Context
	cancel context.CancelFunc

	queueMu sync.Mutex
	queue   []func()
	wake    chan struct{}

	flushMu sync.Mutex
	seq     uint64

	subsMu sync.Mutex
	subs   map[uint64]func(Frame)
	subID  uint64

	closed atomic.Bool
	done   chan struct{}

	renderer *render.Renderer
}

var _ reactive.Ctx = (*Root)(nil)

// Mount renders comp into a new Root and flushes the effects of the
// initial render.
func Mount(comp vdom.Component, cfg *Config) (*Root, error) {
	cfg = cfg.withDefaults()
	stdCtx, cancel := context.WithCancel(cfg.Context)

	r := &Root{
		ID:        uuid.NewString(),
		maxPasses: cfg.MaxPasses,
		owner:     reactive.NewOwner(nil),
		stdCtx:    stdCtx,
		cancel:    cancel,
		wake:      make(chan struct{}, 1),
		subs:      make(map[uint64]func(Frame)),
		done:      make(chan struct{}),
		renderer:  render.NewRenderer(render.RendererConfig{}),
	}
	r.logger = cfg.Logger.With("root", r.ID)
	r.tree = vdom.Comp(comp)
	r.top = newComponentInstance(r.tree, nil, r)

	r.flushMu.Lock()
	r.top.render()
	err := r.flushLocked()
	r.flushMu.Unlock()
	if err != nil {
		r.Close()
		return nil, err
	}
	r.logger.Debug("root mounted")
	return r, nil
}

// Dispatch queues fn for the next Flush. Calls on a closed root are
// dropped.
func (r *Root) Dispatch(fn func()) {
	if r.closed.Load() {
		r.logger.Debug("dispatch on closed root dropped")
		return
	}
	r.queueMu.Lock()
	r.queue = append(r.queue, fn)
	r.queueMu.Unlock()
	r.wakeup()
}

// StdContext implements reactive.Ctx. It is cancelled by Close.
func (r *Root) StdContext() context.Context {
	return r.stdCtx
}

func (r *Root) wakeup() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Root) drain() []func() {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	q := r.queue
	r.queue = nil
	return q
}

// Flush applies dispatched work, re-renders dirty instances, and runs
// pending effects until nothing is left. Subscribers receive a Frame if
// anything re-rendered.
func (r *Root) Flush() error {
	r.flushMu.Lock()
	if r.closed.Load() {
		r.flushMu.Unlock()
		return errors.New(errors.CodeRootClosed)
	}

	before := r.seq
	err := r.flushLocked()
	var frame Frame
	rendered := r.seq != before
	if rendered {
		frame = Frame{Seq: r.seq, HTML: r.htmlLocked()}
	}
	r.flushMu.Unlock()

	if rendered {
		r.publish(frame)
	}
	return err
}

func (r *Root) flushLocked() error {
	rendered := false
	for pass := 0; ; pass++ {
		if pass >= r.maxPasses {
			if rendered {
				r.seq++
			}
			return errors.New(errors.CodeRenderLoop).
				WithDetail("still busy after %d passes", r.maxPasses)
		}

		queue := r.drain()
		if len(queue) > 0 {
			reactive.WithCtx(r, func() {
				reactive.Batch(func() {
					for _, fn := range queue {
						fn()
					}
				})
			})
		}

		dirty := r.collectDirty()
		for _, inst := range dirty {
			// A parent rendered earlier in this pass may have rendered or
			// disposed it already.
			if inst.dirty.Load() && !inst.Owner.IsDisposed() {
				inst.render()
			}
		}
		if len(dirty) > 0 {
			rendered = true
		}

		effects := r.owner.HasPendingEffects()
		if effects {
			reactive.WithCtx(r, r.owner.RunPendingEffects)
		}

		if len(queue) == 0 && len(dirty) == 0 && !effects {
			break
		}
	}
	if rendered {
		r.seq++
	}
	return nil
}

// collectDirty walks the instance tree breadth first, so parents come
// before their children.
func (r *Root) collectDirty() []*ComponentInstance {
	var dirty []*ComponentInstance
	level := []*ComponentInstance{r.top}
	for len(level) > 0 {
		var next []*ComponentInstance
		for _, inst := range level {
			if inst.IsDirty() {
				dirty = append(dirty, inst)
			}
			next = append(next, inst.Children...)
		}
		level = next
	}
	return dirty
}

// Run flushes whenever work arrives until ctx is done or the root is
// closed. A flush error stops the loop and is returned.
func (r *Root) Run(ctx context.Context) error {
	defer reactive.ReleaseGoroutine()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case <-r.wake:
			if err := r.Flush(); err != nil {
				if r.closed.Load() {
					return nil
				}
				r.logger.Error("flush failed", "error", err)
				return err
			}
		}
	}
}

// Subscribe registers fn to receive every Frame. fn runs on the flushing
// goroutine after the flush lock is released. The returned func removes
// the subscription.
func (r *Root) Subscribe(fn func(Frame)) func() {
	r.subsMu.Lock()
	r.subID++
	id := r.subID
	r.subs[id] = fn
	r.subsMu.Unlock()

	return func() {
		r.subsMu.Lock()
		delete(r.subs, id)
		r.subsMu.Unlock()
	}
}

func (r *Root) publish(frame Frame) {
	r.subsMu.Lock()
	subs := make([]func(Frame), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.subsMu.Unlock()

	for _, fn := range subs {
		fn(frame)
	}
}

// HTML renders the current tree.
func (r *Root) HTML() string {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	return r.htmlLocked()
}

func (r *Root) htmlLocked() string {
	html, err := r.renderer.RenderToString(r.tree)
	if err != nil {
		r.logger.Error("render failed", "error", err)
		return ""
	}
	return html
}

// Tree returns the resolved tree. Component nodes carry their rendered
// output as children. The tree is replaced piecewise by later flushes and
// must not be modified.
func (r *Root) Tree() *vdom.VNode {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	return r.tree
}

// Instance returns the root component instance.
func (r *Root) Instance() *ComponentInstance {
	return r.top
}

// Done is closed by Close.
func (r *Root) Done() <-chan struct{} {
	return r.done
}

// Close disposes the tree and cancels StdContext. It is idempotent.
func (r *Root) Close() {
	if r.closed.Swap(true) {
		return
	}
	r.cancel()
	close(r.done)

	r.flushMu.Lock()
	r.top.dispose()
	r.owner.Dispose()
	r.flushMu.Unlock()

	r.queueMu.Lock()
	r.queue = nil
	r.queueMu.Unlock()
	r.logger.Debug("root closed")
}
