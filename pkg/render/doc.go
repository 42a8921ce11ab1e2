// Package render writes VNode trees as HTML.
//
// Text and attribute values are escaped, attributes are written in sorted
// order so output is deterministic, boolean attributes are written bare,
// and void elements get no closing tag.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// Component nodes are rendered by calling Render inline. Mounted trees
// should be resolved by the host first so that component state is used.
package render
