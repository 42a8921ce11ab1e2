package demo

import (
	"github.com/vango-dev/statectx/pkg/statectx"
	"github.com/vango-dev/statectx/pkg/vdom"
)

// View returns the board tree: a provider around the mirror, counter,
// and quote panels.
func (b *Board) View() *vdom.VNode {
	return b.ctx.Provider(statectx.Render(func(s statectx.State) *vdom.VNode {
		return vdom.Main(vdom.ID("board"), vdom.AriaBusy(statectx.Value[bool](s, KeyLoading)),
			vdom.Func(b.mirror),
			vdom.Func(b.counterPanel),
			vdom.Func(b.quotePanel),
		)
	}))
}

// mirror publishes each rendered snapshot to Snapshot for the HTTP
// handlers, which run outside the tree.
func (b *Board) mirror() *vdom.VNode {
	b.latest.Store(b.ctx.Use())
	return nil
}

func (b *Board) counterPanel() *vdom.VNode {
	s := b.ctx.Use().State
	return vdom.Section(vdom.Class("counter"),
		vdom.H2("Counter"),
		vdom.P(vdom.ID("count"), vdom.Textf("%d", statectx.Value[int](s, KeyCount))),
		actionButton("decrement", "-"),
		actionButton("increment", "+"),
		actionButton("reset", "Reset"),
	)
}

func (b *Board) quotePanel() *vdom.VNode {
	s := b.ctx.Use().State
	quote := statectx.Value[string](s, KeyQuote)
	errMsg := statectx.Value[string](s, KeyError)

	return vdom.Section(vdom.Class("quote"),
		vdom.H2("Quote"),
		vdom.IfElse(quote != "",
			vdom.Blockquote(vdom.ID("quote"), quote),
			vdom.P(vdom.Class("muted"), "No quote yet."),
		),
		vdom.If(errMsg != "", vdom.P(vdom.Class("error"), vdom.AriaLive("polite"), errMsg)),
		vdom.If(statectx.Value[bool](s, KeyLoading), vdom.P(vdom.Class("muted"), "Loading...")),
		actionButton("fetch", "New quote"),
	)
}

func actionButton(action, label string) *vdom.VNode {
	return vdom.Form(vdom.Method("post"), vdom.Action("/actions/"+action),
		vdom.Button(vdom.Type("submit"), vdom.Data("action", action), label),
	)
}

// pageScript swaps the board for each frame pushed on /ws and posts
// action forms without a reload.
const pageScript = `(function () {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (e) {
    var board = document.getElementById("board");
    if (board) { board.outerHTML = e.data; }
  };
  document.addEventListener("submit", function (e) {
    e.preventDefault();
    fetch(e.target.action, { method: "POST" });
  });
})();`

// Page wraps the rendered board HTML in a full document.
func Page(title string, board string) *vdom.VNode {
	return vdom.Html(
		vdom.Head(
			vdom.Meta(vdom.Attr{Key: "charset", Value: "utf-8"}),
			vdom.Title(title),
		),
		vdom.Body(
			vdom.Header(vdom.H1(title)),
			vdom.Raw(board),
			vdom.Script(vdom.Raw(pageScript)),
		),
	)
}
