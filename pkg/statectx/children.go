package statectx

import "github.com/vango-dev/statectx/pkg/vdom"

// Children is the content of a Provider: either fixed nodes or a function
// of the current state.
type Children[S any] struct {
	nodes []any
	fn    func(S) *vdom.VNode
}

// Static wraps fixed content. It accepts every child form vdom.Fragment
// accepts.
func Static[S any](children ...any) Children[S] {
	return Children[S]{nodes: children}
}

// Render wraps a render prop. The provider re-renders it on every commit.
func Render[S any](fn func(state S) *vdom.VNode) Children[S] {
	return Children[S]{fn: fn}
}

// IsRender reports whether the content is a render prop.
func (c Children[S]) IsRender() bool {
	return c.fn != nil
}

func (c Children[S]) build(state func() S) *vdom.VNode {
	if c.fn != nil {
		return c.fn(state())
	}
	return vdom.Fragment(c.nodes...)
}
