package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a virtual DOM node.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode
	Key      string
	Text     string    // KindText and KindRaw
	Comp     Component // KindComponent

	// Resolved is set by a host once it has rendered a component node into
	// Children. A resolved node with no children rendered nothing.
	Resolved bool
}

// Props holds element attributes.
type Props map[string]any

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty reports whether the attribute carries no key.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Comp wraps a component in a component node. Key, when non-empty,
// distinguishes siblings during reconciliation.
func Comp(c Component, key ...string) *VNode {
	node := &VNode{Kind: KindComponent, Comp: c}
	if len(key) > 0 {
		node.Key = key[0]
	}
	return node
}

// Walk visits node and its descendants depth first, parents before
// children. Returning false from visit skips the node's children.
func Walk(node *VNode, visit func(*VNode) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, visit)
	}
}
