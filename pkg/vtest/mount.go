package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/statectx/pkg/host"
	"github.com/vango-dev/statectx/pkg/vdom"
)

// Mount mounts comp on a new host root and closes it when the test ends.
func Mount(t testing.TB, comp vdom.Component) *host.Root {
	t.Helper()
	root, err := host.Mount(comp, nil)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	t.Cleanup(root.Close)
	return root
}

// MountFunc is Mount(t, vdom.Func(render)).
func MountFunc(t testing.TB, render func() *vdom.VNode) *host.Root {
	t.Helper()
	return Mount(t, vdom.Func(render))
}

// Flush flushes root and fails the test on error.
func Flush(t testing.TB, root *host.Root) {
	t.Helper()
	if err := root.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
}

// Act runs fn, as an event handler would, then flushes root.
//
// Example:
//
//	vtest.Act(t, root, func() { snap.Actions.Increment() })
func Act(t testing.TB, root *host.Root, fn func()) {
	t.Helper()
	fn()
	Flush(t, root)
}

// ExpectHTML asserts that the root's current HTML contains expected.
func ExpectHTML(t testing.TB, root *host.Root, expected string) {
	t.Helper()
	html := root.HTML()
	if !strings.Contains(html, expected) {
		t.Errorf("expected root HTML to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNoHTML asserts that the root's current HTML does not contain
// unexpected.
func ExpectNoHTML(t testing.TB, root *host.Root, unexpected string) {
	t.Helper()
	html := root.HTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected root HTML to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}
