package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/statectx/pkg/vdom"
)

func renderString(t *testing.T, config RendererConfig, node *vdom.VNode) string {
	t.Helper()
	html, err := NewRenderer(config).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error: %v", err)
	}
	return html
}

func TestRenderText(t *testing.T) {
	if got := renderString(t, RendererConfig{}, vdom.Text("Hello, World!")); got != "Hello, World!" {
		t.Errorf("got %q", got)
	}
}

func TestRenderTextEscaping(t *testing.T) {
	got := renderString(t, RendererConfig{}, vdom.Text("<script>alert('xss')</script>"))
	if strings.Contains(got, "<script>") {
		t.Errorf("text not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("missing escaped tag: %q", got)
	}
}

func TestRenderElement(t *testing.T) {
	got := renderString(t, RendererConfig{}, vdom.Div(vdom.Class("container"),
		vdom.H1("Title"),
		vdom.P("Content"),
	))
	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributesSortedAndEscaped(t *testing.T) {
	got := renderString(t, RendererConfig{}, vdom.Div(
		vdom.ID("x"),
		vdom.Data("note", "a \"b\"\nc"),
		vdom.Class("c"),
	))
	want := `<div class="c" data-note="a &quot;b&quot;&#10;c" id="x"></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"true", vdom.Button(vdom.Disabled(true), "go"), `<button disabled>go</button>`},
		{"false", vdom.Button(vdom.Disabled(false), "go"), `<button>go</button>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, RendererConfig{}, tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderVoidElement(t *testing.T) {
	got := renderString(t, RendererConfig{}, vdom.Input(vdom.Type("text"), vdom.Name("q")))
	if got != `<input name="q" type="text">` {
		t.Errorf("got %q", got)
	}
}

func TestRenderFragmentAndRaw(t *testing.T) {
	got := renderString(t, RendererConfig{}, vdom.Fragment("a", vdom.Raw("<b>b</b>"), "c"))
	if got != "a<b>b</b>c" {
		t.Errorf("got %q", got)
	}
}

func TestRenderUnresolvedComponentInline(t *testing.T) {
	comp := vdom.Func(func() *vdom.VNode { return vdom.Span("inner") })
	got := renderString(t, RendererConfig{}, vdom.Div(comp))
	if got != "<div><span>inner</span></div>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderResolvedComponentUsesChildren(t *testing.T) {
	calls := 0
	comp := vdom.Func(func() *vdom.VNode { calls++; return vdom.Text("fresh") })
	node := &vdom.VNode{Kind: vdom.KindComponent, Comp: comp, Children: []*vdom.VNode{vdom.Text("resolved")}}

	got := renderString(t, RendererConfig{}, node)
	if got != "resolved" || calls != 0 {
		t.Errorf("got %q with %d render calls", got, calls)
	}
}

func TestRenderResolvedEmptyComponent(t *testing.T) {
	calls := 0
	comp := vdom.Func(func() *vdom.VNode { calls++; return vdom.Text("fresh") })
	node := &vdom.VNode{Kind: vdom.KindComponent, Comp: comp, Resolved: true}

	got := renderString(t, RendererConfig{}, vdom.Div(node))
	if got != "<div></div>" || calls != 0 {
		t.Errorf("got %q with %d render calls", got, calls)
	}
}

func TestRenderDoctypePretty(t *testing.T) {
	got := renderString(t, RendererConfig{Doctype: true, Pretty: true}, vdom.Div(vdom.P("x")))
	want := "<!DOCTYPE html>\n<div>\n  <p>x</p>\n</div>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
