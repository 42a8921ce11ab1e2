package reactive

import "testing"

func TestEffectOutsideRenderRunsImmediately(t *testing.T) {
	sig := NewSignal(1)
	var seen []int
	CreateEffect(func() Cleanup {
		seen = append(seen, sig.Get())
		return nil
	})
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("seen = %v, want [1]", seen)
	}

	sig.Set(2)
	if len(seen) != 2 || seen[1] != 2 {
		t.Fatalf("ownerless effect should re-run in place, seen = %v", seen)
	}
}

func TestEffectDeferredDuringRender(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	sig := NewSignal(0)
	runs := 0
	render := func() *Effect {
		var e *Effect
		WithOwner(owner, func() {
			owner.StartRender()
			e = CreateEffect(func() Cleanup {
				_ = sig.Get()
				runs++
				return nil
			})
			owner.EndRender()
		})
		return e
	}

	first := render()
	if runs != 0 {
		t.Fatalf("effect ran during render, runs = %d", runs)
	}
	if !owner.HasPendingEffects() {
		t.Fatal("expected a pending effect after render")
	}
	owner.RunPendingEffects()
	if runs != 1 {
		t.Fatalf("runs after commit = %d, want 1", runs)
	}

	second := render()
	if first != second {
		t.Fatal("effect identity changed across renders")
	}
	owner.RunPendingEffects()
	if runs != 1 {
		t.Fatalf("re-render should not reschedule the effect, runs = %d", runs)
	}

	sig.Set(1)
	if runs != 1 {
		t.Fatal("effect ran inline with the write")
	}
	owner.RunPendingEffects()
	if runs != 2 {
		t.Fatalf("runs after change = %d, want 2", runs)
	}
}

func TestEffectCleanupOnDispose(t *testing.T) {
	owner := NewOwner(nil)
	cleaned := 0
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			return func() { cleaned++ }
		})
	})
	owner.Dispose()
	if cleaned != 1 {
		t.Fatalf("cleanup ran %d times, want 1", cleaned)
	}
}

func TestRunPendingEffectsRecursesIntoChildren(t *testing.T) {
	root := NewOwner(nil)
	defer root.Dispose()
	child := NewOwner(root)

	runs := 0
	WithOwner(child, func() {
		child.StartRender()
		CreateEffect(func() Cleanup {
			runs++
			return nil
		})
		child.EndRender()
	})

	root.RunPendingEffects()
	if runs != 1 {
		t.Fatalf("child effect runs = %d, want 1", runs)
	}
}

func TestOnUnmount(t *testing.T) {
	owner := NewOwner(nil)
	called := false
	WithOwner(owner, func() {
		OnUnmount(func() { called = true })
	})
	owner.Dispose()
	if !called {
		t.Fatal("OnUnmount callback did not run on dispose")
	}
}
