package host

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/vango-dev/statectx/pkg/reactive"
	"github.com/vango-dev/statectx/pkg/vdom"
)

// ComponentInstance is a mounted component with its reactive scope.
type ComponentInstance struct {
	// InstanceID is unique within the process.
	InstanceID string

	// Component is the component last rendered by this instance.
	Component vdom.Component

	// Key is the reconciliation key of the node that mounted it.
	Key string

	// Owner scopes the signals, effects, and context values created while
	// rendering this instance.
	Owner *reactive.Owner

	// Parent is nil for the root instance.
	Parent *ComponentInstance

	// Children are the component instances found in the last output, in
	// traversal order.
	Children []*ComponentInstance

	depth int
	dirty atomic.Bool
	root  *Root

	// node is the component vnode in the resolved tree. Its Children hold
	// this instance's output.
	node *vdom.VNode
}

var _ reactive.Listener = (*ComponentInstance)(nil)

var componentIDCounter atomic.Uint64

func generateComponentID() string {
	return fmt.Sprintf("c%d", componentIDCounter.Add(1))
}

func newComponentInstance(node *vdom.VNode, parent *ComponentInstance, root *Root) *ComponentInstance {
	parentOwner := root.owner
	depth := 0
	if parent != nil {
		parentOwner = parent.Owner
		depth = parent.depth + 1
	}
	return &ComponentInstance{
		InstanceID: generateComponentID(),
		Component:  node.Comp,
		Key:        node.Key,
		Owner:      reactive.NewOwner(parentOwner),
		Parent:     parent,
		depth:      depth,
		root:       root,
		node:       node,
	}
}

// render runs the component with its owner, listener, and the root's Ctx
// installed, stores the output on the instance node, and reconciles the
// child components found in it.
func (c *ComponentInstance) render() {
	c.dirty.Store(false)
	if c.Component == nil {
		return
	}

	var out *vdom.VNode
	reactive.WithCtx(c.root, func() {
		reactive.WithOwner(c.Owner, func() {
			c.Owner.StartRender()
			defer c.Owner.EndRender()

			reactive.WithListener(c, func() {
				out = c.Component.Render()
			})
		})
	})

	if out == nil {
		c.node.Children = nil
	} else {
		c.node.Children = []*vdom.VNode{out}
	}
	c.node.Resolved = true
	c.reconcile(out)
}

// reconcile matches the component nodes in out against the current
// children. Keyed nodes match a child with the same key and Go type;
// unkeyed nodes match the unkeyed child at the same position if the type
// agrees. Matched instances keep their owner, and with it their state.
// Unmatched children are disposed.
func (c *ComponentInstance) reconcile(out *vdom.VNode) {
	nodes := collectComponents(out)
	old := c.Children
	used := make([]bool, len(old))

	next := make([]*ComponentInstance, 0, len(nodes))
	for i, node := range nodes {
		idx := -1
		if node.Key != "" {
			for j, o := range old {
				if !used[j] && o.Key == node.Key && sameType(o.Component, node.Comp) {
					idx = j
					break
				}
			}
		} else if i < len(old) && !used[i] && old[i].Key == "" && sameType(old[i].Component, node.Comp) {
			idx = i
		}

		var inst *ComponentInstance
		if idx >= 0 {
			used[idx] = true
			inst = old[idx]
			inst.Component = node.Comp
			inst.node = node
		} else {
			inst = newComponentInstance(node, c, c.root)
		}
		next = append(next, inst)
	}

	for i, o := range old {
		if !used[i] {
			o.dispose()
		}
	}
	c.Children = next

	for _, inst := range next {
		inst.render()
	}
}

// collectComponents returns the component nodes of out in traversal order
// without descending into them.
func collectComponents(out *vdom.VNode) []*vdom.VNode {
	var nodes []*vdom.VNode
	vdom.Walk(out, func(n *vdom.VNode) bool {
		if n.Kind == vdom.KindComponent {
			if n.Comp != nil {
				nodes = append(nodes, n)
			}
			return false
		}
		return true
	})
	return nodes
}

func sameType(a, b vdom.Component) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// MarkDirty implements reactive.Listener. It schedules a re-render on the
// root's loop.
func (c *ComponentInstance) MarkDirty() {
	if c.Owner == nil || c.Owner.IsDisposed() {
		return
	}
	if c.dirty.CompareAndSwap(false, true) {
		c.root.wakeup()
	}
}

// ID implements reactive.Listener.
func (c *ComponentInstance) ID() uint64 {
	if c.Owner != nil {
		return c.Owner.ID()
	}
	return 0
}

// IsDirty reports whether the instance awaits a re-render.
func (c *ComponentInstance) IsDirty() bool {
	return c.dirty.Load()
}

// Depth is 0 for the root instance.
func (c *ComponentInstance) Depth() int {
	return c.depth
}

// dispose tears down the subtree. Disposing the owner also disposes the
// owners of descendants, which runs their cleanups.
func (c *ComponentInstance) dispose() {
	for i := len(c.Children) - 1; i >= 0; i-- {
		c.Children[i].dispose()
	}
	c.Children = nil
	c.Owner.Dispose()
	c.dirty.Store(false)
}
