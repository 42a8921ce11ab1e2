package vtest_test

import (
	"testing"

	"github.com/vango-dev/statectx/pkg/reactive"
	"github.com/vango-dev/statectx/pkg/vdom"
	"github.com/vango-dev/statectx/pkg/vtest"
)

func TestRenderToString(t *testing.T) {
	node := vdom.Div(vdom.Class("card"), vdom.H1("Title"))
	want := `<div class="card"><h1>Title</h1></div>`
	if got := vtest.RenderToString(node); got != want {
		t.Errorf("RenderToString() = %q, want %q", got, want)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := vdom.Button(vdom.Class("btn-primary"), "Save")

	vtest.ExpectContains(t, node, "Save")
	vtest.ExpectNotContains(t, node, "Delete")
	vtest.ExpectElement(t, node, "button")
	vtest.ExpectAttribute(t, node, "class", "btn-primary")
}

func TestMountAndAct(t *testing.T) {
	var count *reactive.Signal[int]
	root := vtest.MountFunc(t, func() *vdom.VNode {
		count = reactive.NewSignal(0)
		return vdom.P(vdom.Textf("count: %d", count.Get()))
	})

	vtest.ExpectHTML(t, root, "count: 0")
	vtest.Act(t, root, func() { count.Set(3) })
	vtest.ExpectHTML(t, root, "count: 3")
	vtest.ExpectNoHTML(t, root, "count: 0")
}
