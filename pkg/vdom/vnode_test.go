package vdom

import (
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		selector string
		want     Selector
	}{
		{"div", Selector{Tag: "div"}},
		{"button.primary", Selector{Tag: "button", Classes: []string{"primary"}}},
		{"div.a.b#main", Selector{Tag: "div", Classes: []string{"a", "b"}, ID: "main"}},
		{"span#x.a", Selector{Tag: "span", Classes: []string{"a"}, ID: "x"}},
		{".orphan", Selector{Tag: "div", Classes: []string{"orphan"}}},
		{"p..a#", Selector{Tag: "p", Classes: []string{"a"}}},
		{"i#a#b", Selector{Tag: "i", ID: "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.selector, func(t *testing.T) {
			got := ParseSelector(tc.selector)
			if got.Tag != tc.want.Tag || got.ID != tc.want.ID {
				t.Errorf("ParseSelector(%q) = %+v, want %+v", tc.selector, got, tc.want)
			}
			if len(got.Classes) != len(tc.want.Classes) {
				t.Fatalf("classes = %v, want %v", got.Classes, tc.want.Classes)
			}
			for i := range got.Classes {
				if got.Classes[i] != tc.want.Classes[i] {
					t.Errorf("classes[%d] = %q, want %q", i, got.Classes[i], tc.want.Classes[i])
				}
			}
		})
	}
}

func TestH(t *testing.T) {
	t.Run("properties first", func(t *testing.T) {
		node := H("div", Props{"id": "x"}, H("span"))
		if node.Properties["id"] != "x" {
			t.Errorf("Properties = %v", node.Properties)
		}
		if len(node.Children) != 1 || node.Children[0].Selector != "span" {
			t.Errorf("Children = %v", node.Children)
		}
	})

	t.Run("single string becomes text", func(t *testing.T) {
		node := H("h2", "Title")
		if node.Text != "Title" || len(node.Children) != 0 {
			t.Errorf("Text = %q, Children = %v", node.Text, node.Children)
		}
		node = H("h2", []string{"Title"})
		if node.Text != "Title" {
			t.Errorf("[]string Text = %q", node.Text)
		}
	})

	t.Run("flattens and drops nil", func(t *testing.T) {
		var missing *VNode
		node := H("ul", []any{H("li"), nil, []*VNode{H("li"), missing}}, 42)
		if len(node.Children) != 3 {
			t.Fatalf("len(Children) = %d, want 3", len(node.Children))
		}
		if !node.Children[2].IsText() || node.Children[2].Text != "42" {
			t.Errorf("last child = %+v, want text leaf 42", node.Children[2])
		}
	})

	t.Run("strings among children are text leaves", func(t *testing.T) {
		node := H("p", "a", H("b"), "c")
		if len(node.Children) != 3 || node.Children[0].Text != "a" || node.Children[2].Text != "c" {
			t.Errorf("Children = %v", node.Children)
		}
	})
}

func TestSame(t *testing.T) {
	fn := func() {}
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"text leaves", Text("a"), Text("b"), true},
		{"different selectors", H("div"), H("span"), false},
		{"no properties", H("div"), H("div"), true},
		{"properties on one side", H("div", Props{}), H("div"), false},
		{"equal keys", H("li", Props{"key": 1}), H("li", Props{"key": 1}), true},
		{"different keys", H("li", Props{"key": 1}), H("li", Props{"key": 2}), false},
		{"bind as key", H("li", Props{"bind": "x"}), H("li", Props{"bind": "x"}), true},
		{"bind differs under key", H("li", Props{"key": 1, "bind": "x"}), H("li", Props{"key": 1, "bind": "y"}), false},
		{"func keys by identity", H("li", Props{"key": fn}), H("li", Props{"key": fn}), true},
		{"unkeyed with properties", H("li", Props{"id": "a"}), H("li", Props{"id": "b"}), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Same(tc.a, tc.b); got != tc.want {
				t.Errorf("Same() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Category
	}{
		{"className", "x", CategoryUnsupported},
		{"key", 1, CategoryIdentity},
		{"class", "a b", CategoryClass},
		{"classes", map[string]bool{}, CategoryClassMap},
		{"styles", map[string]string{}, CategoryStyleMap},
		{"onclick", func() {}, CategoryHandler},
		{"onclick", "alert(1)", CategoryAttribute},
		{"afterCreate", nil, CategoryLifecycle},
		{"exitAnimation", "fade", CategoryAnimation},
		{"value", "x", CategoryValue},
		{"title", "x", CategoryAttribute},
		{"disabled", true, CategoryProperty},
		{"innerHTML", "<b>x</b>", CategoryProperty},
		{"title", nil, CategoryEmpty},
	}

	for _, tc := range tests {
		if got := Categorize(tc.name, tc.value); got != tc.want {
			t.Errorf("Categorize(%q, %v) = %v, want %v", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestElFoldsAttributes(t *testing.T) {
	node := Div(
		Class("card"),
		ClassIf(true, "active"),
		ClassIf(false, "hidden"),
		Style("color", "red"),
		Style("margin", "0"),
		ID("main"),
		AttrIf(false, Href("/nowhere")),
		H1("Title"),
	)

	if node.Properties[PropClass] != "card" {
		t.Errorf("class = %v", node.Properties[PropClass])
	}
	classes := node.Properties[PropClasses].(map[string]bool)
	if !classes["active"] || classes["hidden"] {
		t.Errorf("classes = %v", classes)
	}
	styles := node.Properties[PropStyles].(map[string]string)
	if styles["color"] != "red" || styles["margin"] != "0" {
		t.Errorf("styles = %v", styles)
	}
	if _, ok := node.Properties["href"]; ok {
		t.Error("AttrIf(false) should not set href")
	}
	if len(node.Children) != 1 || node.Children[0].Text != "Title" {
		t.Errorf("Children = %v", node.Children)
	}

	if plain := Span("x"); plain.Properties != nil {
		t.Errorf("element without attributes has Properties %v", plain.Properties)
	}
}

func TestKeyFallsBackToBind(t *testing.T) {
	if k := H("li", Props{"bind": "b"}).Key(); k != "b" {
		t.Errorf("Key() = %v, want b", k)
	}
	if k := H("li", Props{"key": "k", "bind": "b"}).Key(); k != "k" {
		t.Errorf("Key() = %v, want k", k)
	}
	if k := H("li").Key(); k != nil {
		t.Errorf("Key() = %v, want nil", k)
	}
}

func TestHelpers(t *testing.T) {
	if If(false, Div()) != nil {
		t.Error("If(false) should return nil")
	}
	called := false
	When(false, func() *VNode { called = true; return nil })
	if called {
		t.Error("When(false) should not call fn")
	}
	if IfElse(false, Div(), Span()).Selector != "span" {
		t.Error("IfElse(false) should return second node")
	}
	items := Range([]string{"a", "b", "skip"}, func(s string, i int) *VNode {
		if s == "skip" {
			return nil
		}
		return Li(Key(i), s)
	})
	if len(items) != 2 || items[1].Key() != 1 {
		t.Errorf("Range() = %v", items)
	}
}
