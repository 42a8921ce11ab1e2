// Package vtest provides testing helpers for components.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    root := vtest.Mount(t, vdom.Func(App))
//	    vtest.ExpectHTML(t, root, "count: 0")
//
//	    vtest.Act(t, root, func() { increment() })
//	    vtest.ExpectHTML(t, root, "count: 1")
//	}
//
// Mount registers root.Close with t.Cleanup, so providers are unmounted
// when the test ends.
//
// # Render Assertions
//
// Assert on rendered HTML output of a plain node:
//
//	vtest.ExpectContains(t, Card("hi"), "hi")
//	vtest.ExpectNotContains(t, Card("hi"), "error")
package vtest
