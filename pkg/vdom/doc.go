// Package vdom provides the virtual node model components render to.
//
// A VNode is an element, a text node, a fragment, raw HTML, or a nested
// component. Elements are built with variadic factories that accept
// attributes, children, strings, and components in any order:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P("Content"),
//	    Counter(),
//	)
//
// Component nodes are left unresolved here. The host mounts them as
// instances with their own reactive owner; the renderer resolves any that
// reach it by calling Render inline.
package vdom
