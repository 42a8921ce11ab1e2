package reactive

// Context is a typed, identity-keyed channel from a providing owner to its
// descendants.
//
//	var Theme = reactive.CreateContext("light")
//
//	func Page() *vdom.VNode {
//	    Theme.Provide("dark")
//	    return vdom.Fragment(Header())
//	}
//
//	func Header() *vdom.VNode {
//	    return vdom.Div(vdom.Class("theme-" + Theme.Use()))
//	}
type Context[T any] struct {
	key          any
	defaultValue T
}

// contextKey makes the key unique per Context even when two contexts
// share T and default value.
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a context that resolves to defaultValue wherever
// no provider is in scope.
func CreateContext[T any](defaultValue T) *Context[T] {
	c := &Context[T]{defaultValue: defaultValue}
	c.key = contextKey[T]{ctx: c}
	return c
}

// Provide publishes value on the current owner. It is a no-op without an
// owner.
func (c *Context[T]) Provide(value T) {
	SetContext(c.key, value)
}

// Use returns the value published by the nearest providing owner, or the
// default.
func (c *Context[T]) Use() T {
	if v := GetContext(c.key); v != nil {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	return c.defaultValue
}

// Lookup is Use with a report of whether a provider was found.
func (c *Context[T]) Lookup() (T, bool) {
	if v := GetContext(c.key); v != nil {
		if typed, ok := v.(T); ok {
			return typed, true
		}
	}
	return c.defaultValue, false
}

// Default returns the fallback value.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
