package reactive

import "testing"

type mockListener struct {
	id    uint64
	dirty int
}

func newMockListener() *mockListener {
	return &mockListener{id: nextID()}
}

func (m *mockListener) MarkDirty() { m.dirty++ }
func (m *mockListener) ID() uint64 { return m.id }

func TestSignalGetSubscribesListener(t *testing.T) {
	sig := NewSignal(1)
	l := newMockListener()

	WithListener(l, func() {
		if got := sig.Get(); got != 1 {
			t.Fatalf("Get() = %d, want 1", got)
		}
	})

	sig.Set(2)
	if l.dirty != 1 {
		t.Fatalf("listener dirty = %d, want 1", l.dirty)
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	sig := NewSignal("a")
	l := newMockListener()

	WithListener(l, func() {
		_ = sig.Peek()
	})
	sig.Set("b")

	if l.dirty != 0 {
		t.Fatalf("Peek() should not subscribe, dirty = %d", l.dirty)
	}
}

func TestSignalSetEqualValueDoesNotNotify(t *testing.T) {
	sig := NewSignal(5)
	l := newMockListener()
	WithListener(l, func() { _ = sig.Get() })

	sig.Set(5)
	if l.dirty != 0 {
		t.Fatalf("equal Set should not notify, dirty = %d", l.dirty)
	}
}

func TestSignalWithEquals(t *testing.T) {
	sig := NewSignal(map[string]any{"n": 1}).WithEquals(func(a, b map[string]any) bool { return false })
	l := newMockListener()
	WithListener(l, func() { _ = sig.Get() })

	sig.Set(map[string]any{"n": 1})
	if l.dirty != 1 {
		t.Fatalf("never-equal signal should notify on every Set, dirty = %d", l.dirty)
	}
}

func TestSignalUpdate(t *testing.T) {
	sig := NewSignal(10)
	sig.Update(func(n int) int { return n + 5 })
	if got := sig.Peek(); got != 15 {
		t.Fatalf("Update() result = %d, want 15", got)
	}
}

func TestSignalDeduplicatesSubscribers(t *testing.T) {
	sig := NewSignal(0)
	l := newMockListener()
	WithListener(l, func() {
		_ = sig.Get()
		_ = sig.Get()
	})
	if n := sig.src.subscriberCount(); n != 1 {
		t.Fatalf("subscriberCount = %d, want 1", n)
	}
}

func TestDefaultEqualsMixedInterfaceValues(t *testing.T) {
	if defaultEquals[any](1, "1") {
		t.Fatal("int and string should not be equal")
	}
	if !defaultEquals[any]("x", "x") {
		t.Fatal("identical strings should be equal")
	}
	if !defaultEquals([]int{1, 2}, []int{1, 2}) {
		t.Fatal("slices with equal contents should be equal")
	}
}

func TestSignalHookSlotStableAcrossRenders(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	render := func(initial int) *Signal[int] {
		var sig *Signal[int]
		WithOwner(owner, func() {
			owner.StartRender()
			sig = NewSignal(initial)
			owner.EndRender()
		})
		return sig
	}

	first := render(1)
	first.Set(7)
	second := render(999)

	if first != second {
		t.Fatal("signal identity changed across renders")
	}
	if got := second.Peek(); got != 7 {
		t.Fatalf("signal re-seeded on re-render: got %d, want 7", got)
	}
}
