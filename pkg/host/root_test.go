package host

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/statectx/internal/errors"
	"github.com/vango-dev/statectx/pkg/reactive"
	"github.com/vango-dev/statectx/pkg/vdom"
)

func mount(t *testing.T, render func() *vdom.VNode) *Root {
	t.Helper()
	r, err := Mount(vdom.Func(render), nil)
	if err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestMountRendersTree(t *testing.T) {
	r := mount(t, func() *vdom.VNode {
		return vdom.Div(vdom.ID("app"), vdom.P("hello"))
	})

	if got, want := r.HTML(), `<div id="app"><p>hello</p></div>`; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if r.ID == "" {
		t.Error("root ID is empty")
	}
	if r.Tree().Kind != vdom.KindComponent {
		t.Errorf("Tree().Kind = %v, want Component", r.Tree().Kind)
	}
}

func TestEmptyComponentIsNotRenderedAgainByHTML(t *testing.T) {
	renders := 0
	empty := vdom.Func(func() *vdom.VNode {
		renders++
		return nil
	})
	r := mount(t, func() *vdom.VNode {
		return vdom.Div(vdom.ID("app"), empty)
	})

	for i := 0; i < 3; i++ {
		if got := r.HTML(); got != `<div id="app"></div>` {
			t.Errorf("HTML() = %q", got)
		}
	}
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
}

func TestSignalWriteRerendersOnFlush(t *testing.T) {
	var count *reactive.Signal[int]
	renders := 0
	r := mount(t, func() *vdom.VNode {
		renders++
		count = reactive.NewSignal(0)
		return vdom.Span(vdom.Textf("%d", count.Get()))
	})

	count.Set(5)
	if !r.Instance().IsDirty() {
		t.Fatal("instance not dirty after write")
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if got := r.HTML(); got != "<span>5</span>" {
		t.Errorf("HTML() = %q", got)
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestDispatchBatchesWrites(t *testing.T) {
	var count *reactive.Signal[int]
	renders := 0
	r := mount(t, func() *vdom.VNode {
		renders++
		count = reactive.NewSignal(0)
		return vdom.Span(vdom.Textf("%d", count.Get()))
	})

	for i := 1; i <= 3; i++ {
		r.Dispatch(func() { count.Update(func(n int) int { return n + 1 }) })
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if got := r.HTML(); got != "<span>3</span>" {
		t.Errorf("HTML() = %q", got)
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2 (one initial, one batched)", renders)
	}
}

func TestDispatchInstallsCtx(t *testing.T) {
	r := mount(t, func() *vdom.VNode { return nil })

	var got reactive.Ctx
	r.Dispatch(func() { got = reactive.UseCtx() })
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if got != r {
		t.Errorf("UseCtx() in dispatch = %v, want root", got)
	}
}

func TestChildStateSurvivesParentRerender(t *testing.T) {
	var parentTick *reactive.Signal[int]
	var childCount *reactive.Signal[int]
	childRenders := 0

	child := vdom.Func(func() *vdom.VNode {
		childRenders++
		childCount = reactive.NewSignal(10)
		return vdom.Span(vdom.Textf("child %d", childCount.Get()))
	})

	r := mount(t, func() *vdom.VNode {
		parentTick = reactive.NewSignal(0)
		return vdom.Div(vdom.Textf("parent %d", parentTick.Get()), child)
	})

	childCount.Set(11)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	parentTick.Set(1)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if got, want := r.HTML(), "<div>parent 1<span>child 11</span></div>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if childRenders != 3 {
		t.Errorf("childRenders = %d, want 3", childRenders)
	}
}

func TestUnmountedChildIsDisposed(t *testing.T) {
	var show *reactive.Signal[bool]
	cleaned := false

	child := vdom.Func(func() *vdom.VNode {
		reactive.OnUnmount(func() { cleaned = true })
		return vdom.Span("child")
	})

	r := mount(t, func() *vdom.VNode {
		show = reactive.NewSignal(true)
		return vdom.Div(vdom.If(show.Get(), vdom.Comp(child)))
	})
	if len(r.Instance().Children) != 1 {
		t.Fatalf("children = %d, want 1", len(r.Instance().Children))
	}

	show.Set(false)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if !cleaned {
		t.Error("child cleanup did not run")
	}
	if len(r.Instance().Children) != 0 {
		t.Errorf("children = %d, want 0", len(r.Instance().Children))
	}
	if strings.Contains(r.HTML(), "child") {
		t.Errorf("HTML() still contains child: %q", r.HTML())
	}
}

type labelComp struct{ label string }

func (c *labelComp) Render() *vdom.VNode {
	n := reactive.NewSignal(c.label)
	return vdom.Li(n.Get())
}

func TestKeyedChildrenFollowKeys(t *testing.T) {
	var order *reactive.Signal[[]string]
	r := mount(t, func() *vdom.VNode {
		order = reactive.NewSignal([]string{"a", "b"})
		return vdom.Ul(vdom.Range(order.Get(), func(k string, _ int) *vdom.VNode {
			return vdom.Comp(&labelComp{label: k + "-new"}, k)
		}))
	})
	first := r.Instance().Children[0]

	order.Set([]string{"b", "a"})
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if r.Instance().Children[1] != first {
		t.Error("keyed instance was not moved with its key")
	}
	if got, want := r.HTML(), "<ul><li>b-new</li><li>a-new</li></ul>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestEffectsRunAfterRender(t *testing.T) {
	var seen []string
	r := mount(t, func() *vdom.VNode {
		seen = append(seen, "render")
		reactive.CreateEffect(func() reactive.Cleanup {
			seen = append(seen, "effect")
			return nil
		})
		return nil
	})
	_ = r

	if got := strings.Join(seen, ","); got != "render,effect" {
		t.Errorf("order = %s", got)
	}
}

func TestRenderLoopLimit(t *testing.T) {
	var count *reactive.Signal[int]
	r, err := Mount(vdom.Func(func() *vdom.VNode {
		count = reactive.NewSignal(0)
		n := count.Get()
		reactive.CreateEffect(func() reactive.Cleanup {
			count.Set(count.Get() + 1)
			return nil
		})
		return vdom.Textf("%d", n)
	}), &Config{MaxPasses: 5})
	if err == nil {
		r.Close()
		t.Fatal("Mount() should fail with a render loop")
	}
	if !stderrors.Is(err, errors.ErrRenderLoop) {
		t.Errorf("err = %v, want render loop", err)
	}
}

func TestSubscribeReceivesFrames(t *testing.T) {
	var count *reactive.Signal[int]
	r := mount(t, func() *vdom.VNode {
		count = reactive.NewSignal(0)
		return vdom.Textf("n=%d", count.Get())
	})

	var frames []Frame
	unsubscribe := r.Subscribe(func(f Frame) { frames = append(frames, f) })

	count.Set(1)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	// Nothing changed: no frame.
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	unsubscribe()
	count.Set(2)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	if frames[0].HTML != "n=1" || frames[0].Seq != 1 {
		t.Errorf("frame = %+v", frames[0])
	}
}

func TestCloseDropsDispatchAndCancelsContext(t *testing.T) {
	r, err := Mount(vdom.Func(func() *vdom.VNode { return nil }), nil)
	if err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	stdCtx := r.StdContext()
	r.Close()
	r.Close()

	ran := false
	r.Dispatch(func() { ran = true })
	if err := r.Flush(); !stderrors.Is(err, errors.ErrRootClosed) {
		t.Errorf("Flush() after Close = %v, want root closed", err)
	}
	if ran {
		t.Error("dispatch ran after Close")
	}
	if stdCtx.Err() == nil {
		t.Error("StdContext not cancelled")
	}
}

func TestRunFlushesDispatchFromGoroutines(t *testing.T) {
	var count *reactive.Signal[int]
	r := mount(t, func() *vdom.VNode {
		count = reactive.NewSignal(0)
		return vdom.Textf("%d", count.Get())
	})

	frames := make(chan Frame, 16)
	r.Subscribe(func(f Frame) { frames <- f })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Dispatch(func() { count.Update(func(n int) int { return n + 1 }) })
		}()
	}
	wg.Wait()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-frames:
			if f.HTML == "10" {
				cancel()
				if err := <-done; !stderrors.Is(err, context.Canceled) {
					t.Errorf("Run() = %v, want context.Canceled", err)
				}
				return
			}
		case <-deadline:
			t.Fatalf("timed out, last HTML %q", r.HTML())
		}
	}
}
