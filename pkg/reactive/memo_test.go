package reactive

import "testing"

func TestMemoLazyAndCached(t *testing.T) {
	count := NewSignal(2)
	runs := 0
	doubled := NewMemo(func() int {
		runs++
		return count.Get() * 2
	})

	if runs != 0 {
		t.Fatalf("memo computed eagerly, runs = %d", runs)
	}
	if got := doubled.Get(); got != 4 {
		t.Fatalf("Get() = %d, want 4", got)
	}
	_ = doubled.Get()
	if runs != 1 {
		t.Fatalf("memo recomputed without a change, runs = %d", runs)
	}

	count.Set(3)
	if got := doubled.Get(); got != 6 {
		t.Fatalf("Get() after change = %d, want 6", got)
	}
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
}

func TestMemoPointerStableUntilSourceChanges(t *testing.T) {
	sig := NewSignal(1)
	type box struct{ n int }
	m := NewMemo(func() *box { return &box{n: sig.Get()} })

	a := m.Get()
	b := m.Get()
	if a != b {
		t.Fatal("memo returned a new pointer without a source change")
	}

	sig.Set(2)
	c := m.Get()
	if c == a || c.n != 2 {
		t.Fatalf("memo did not recompute after change: %+v", c)
	}
}

func TestMemoPropagatesToSubscribers(t *testing.T) {
	sig := NewSignal(1)
	m := NewMemo(func() int { return sig.Get() + 1 })
	l := newMockListener()

	WithListener(l, func() { _ = m.Get() })
	sig.Set(5)

	if l.dirty != 1 {
		t.Fatalf("memo subscriber dirty = %d, want 1", l.dirty)
	}
}

func TestMemoDropsStaleSources(t *testing.T) {
	useA := NewSignal(true)
	a := NewSignal("a")
	b := NewSignal("b")
	m := NewMemo(func() string {
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	_ = m.Get()
	useA.Set(false)
	_ = m.Get()

	if n := a.src.subscriberCount(); n != 0 {
		t.Fatalf("memo still subscribed to unused source, subscribers = %d", n)
	}
}
