package vdom

import "testing"

func TestCreateElementMixedArgs(t *testing.T) {
	child := Func(func() *VNode { return Text("c") })
	node := Div(
		Class("card", "wide"),
		ID("main"),
		nil,
		"plain",
		Span("inner"),
		[]*VNode{P("one"), nil, P("two")},
		child,
		Key("k1"),
	)

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("unexpected node %+v", node)
	}
	if node.Props["class"] != "card wide" {
		t.Errorf("class = %v", node.Props["class"])
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if node.Key != "k1" {
		t.Errorf("Key = %q, want k1", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}

	kinds := []VKind{KindText, KindElement, KindElement, KindElement, KindComponent}
	if len(node.Children) != len(kinds) {
		t.Fatalf("children = %d, want %d", len(node.Children), len(kinds))
	}
	for i, k := range kinds {
		if node.Children[i].Kind != k {
			t.Errorf("child %d kind = %v, want %v", i, node.Children[i].Kind, k)
		}
	}
}

func TestFragmentFlattensNestedAny(t *testing.T) {
	f := Fragment("a", []any{"b", nil, Text("c")}, nil)
	if len(f.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(f.Children))
	}
}

func TestVoidElements(t *testing.T) {
	if !IsVoidElement("input") || IsVoidElement("div") {
		t.Fatal("void element table is wrong")
	}
}

func TestConditionals(t *testing.T) {
	n := Text("x")
	if If(false, n) != nil || If(true, n) != n {
		t.Error("If")
	}
	if IfElse(false, n, nil) != nil {
		t.Error("IfElse")
	}
	nodes := Range([]int{1, 2, 3}, func(i, _ int) *VNode {
		if i == 2 {
			return nil
		}
		return Textf("%d", i)
	})
	if len(nodes) != 2 || nodes[1].Text != "3" {
		t.Errorf("Range = %+v", nodes)
	}
}
