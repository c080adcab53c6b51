package vdom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/widgetkit/pkg/memdom"
	"github.com/vango-dev/widgetkit/pkg/protocol"
	. "github.com/vango-dev/widgetkit/pkg/vdom"
)

func mount(t *testing.T, tree *VNode) (*memdom.Document, *Projection) {
	t.Helper()
	doc := memdom.New()
	p, err := Append(doc.Root(), tree, Options{Surface: doc})
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	doc.Flush()
	return doc, p
}

func update(t *testing.T, p *Projection, tree *VNode) {
	t.Helper()
	if err := p.Update(tree); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
}

func count(patches []protocol.Patch, op protocol.PatchOp) int {
	n := 0
	for _, p := range patches {
		if p.Op == op {
			n++
		}
	}
	return n
}

func texts(n *memdom.Node) string {
	parts := make([]string, 0, len(n.Children()))
	for _, c := range n.Children() {
		parts = append(parts, c.Text())
	}
	return strings.Join(parts, ",")
}

func TestAppendCreatesOutput(t *testing.T) {
	doc := memdom.New()
	tree := Div(Class("card"), ID("main"),
		H("h2.title", "Widget"),
		Input(Type("text"), Value("x"), Disabled(true)),
	)
	p, err := Append(doc.Root(), tree, Options{Surface: doc})
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	want := `<div class="card" id="main"><h2 class="title">Widget</h2><input type="text" disabled value="x"></div>`
	if got := doc.InnerHTML(doc.Root()); got != want {
		t.Errorf("HTML =\n%s\nwant\n%s", got, want)
	}
	if p.Root() != tree {
		t.Error("Root() should return the rendered tree")
	}
	if st := p.Stats(); st.Created != 3 {
		t.Errorf("Created = %d, want 3", st.Created)
	}
}

func TestUpdateWithEqualTreeMutatesNothing(t *testing.T) {
	onClick := func(*Event) {}
	render := func() *VNode {
		return Div(Class("cart"),
			Ul(Li(Key(1), "one"), Li(Key(2), "two")),
			Button(OnClick(onClick), Styles(map[string]string{"color": "red"}), "Add"),
			Text("total"),
		)
	}
	doc, p := mount(t, render())

	update(t, p, render())
	if n := doc.MutationCount(); n != 0 {
		t.Errorf("MutationCount() = %d, want 0: %v", n, doc.Patches())
	}

	// same tree again takes the identity shortcut
	update(t, p, p.Root())
	if n := doc.MutationCount(); n != 0 {
		t.Errorf("MutationCount() = %d, want 0", n)
	}
}

func TestTextChanges(t *testing.T) {
	doc, p := mount(t, Div(Text("a"), P("x")))

	update(t, p, Div(Text("b"), P("y")))
	root := doc.Root().Children()[0]
	if got := texts(root); got != "b,y" {
		t.Errorf("texts = %q, want %q", got, "b,y")
	}
	patches := doc.Flush()
	if count(patches, protocol.PatchReplaceChild) != 1 {
		t.Errorf("text leaf should be replaced: %v", patches)
	}
	if count(patches, protocol.PatchSetText) != 1 {
		t.Errorf("text shortcut should be set: %v", patches)
	}

	update(t, p, Div(Text("b"), P()))
	if got := texts(root); got != "b," {
		t.Errorf("texts after clearing = %q, want %q", got, "b,")
	}
}

func TestKeyedReorderReusesNodes(t *testing.T) {
	list := func(keys ...string) *VNode {
		return Ul(Range(keys, func(k string, _ int) *VNode {
			return Li(Key(k), strings.ToUpper(k))
		}))
	}
	doc, p := mount(t, list("a", "b", "c"))
	ul := doc.Root().Children()[0]
	before := map[string]*memdom.Node{}
	for _, li := range ul.Children() {
		before[li.Text()] = li
	}

	update(t, p, list("c", "a", "b"))

	if got := texts(ul); got != "C,A,B" {
		t.Errorf("order = %q, want %q", got, "C,A,B")
	}
	for _, li := range ul.Children() {
		if before[li.Text()] != li {
			t.Errorf("%s was recreated", li.Text())
		}
	}
	patches := doc.Flush()
	if count(patches, protocol.PatchCreateElement) != 0 || count(patches, protocol.PatchRemoveChild) != 0 {
		t.Errorf("reorder should only move nodes: %v", patches)
	}
	if st := p.Stats(); st.Created != 0 || st.Removed != 0 {
		t.Errorf("Stats = %+v, want no creations or removals", st)
	}
}

func TestKeyedInsertAndRemove(t *testing.T) {
	list := func(keys ...int) *VNode {
		return Ul(Range(keys, func(k int, _ int) *VNode {
			return Li(Key(k), Textf("%d", k))
		}))
	}
	doc, p := mount(t, list(1, 2, 3))
	ul := doc.Root().Children()[0]

	update(t, p, list(1, 4, 2, 3))
	if got := texts(ul); got != "1,4,2,3" {
		t.Errorf("after insert = %q", got)
	}

	update(t, p, list(4, 3))
	if got := texts(ul); got != "4,3" {
		t.Errorf("after remove = %q", got)
	}
	if st := p.Stats(); st.Removed != 2 {
		t.Errorf("Removed = %d, want 2", st.Removed)
	}

	update(t, p, list(3, 5, 4))
	if got := texts(ul); got != "3,5,4" {
		t.Errorf("after shuffle = %q", got)
	}
}

func TestAmbiguousSiblings(t *testing.T) {
	t.Run("added", func(t *testing.T) {
		_, p := mount(t, Div())
		err := p.Update(Div(Span(), Span()))
		if !errors.Is(err, ErrAmbiguousAdded) {
			t.Errorf("err = %v, want ErrAmbiguousAdded", err)
		}
	})

	t.Run("removed", func(t *testing.T) {
		_, p := mount(t, Div(Span(), Span()))
		err := p.Update(Div())
		if !errors.Is(err, ErrAmbiguousRemoved) {
			t.Errorf("err = %v, want ErrAmbiguousRemoved", err)
		}
	})

	t.Run("duplicate keys", func(t *testing.T) {
		_, p := mount(t, Ul())
		err := p.Update(Ul(Li(Key(1)), Li(Key(1))))
		if !errors.Is(err, ErrAmbiguousAdded) {
			t.Errorf("err = %v, want ErrAmbiguousAdded", err)
		}
	})

	t.Run("text leaves are fine", func(t *testing.T) {
		_, p := mount(t, P())
		update(t, p, P(Text("a"), Text("a")))
		update(t, p, P())
	})
}

func TestClassIsImmutable(t *testing.T) {
	_, p := mount(t, Div(Class("a")))
	update(t, p, Div(Class("a")))
	err := p.Update(Div(Class("b")))
	if !errors.Is(err, ErrClassChanged) {
		t.Errorf("err = %v, want ErrClassChanged", err)
	}
}

func TestClassesToggle(t *testing.T) {
	doc, p := mount(t, Div(Classes(map[string]bool{"open": true, "busy": false})))
	el := doc.Root().Children()[0]

	update(t, p, Div(Classes(map[string]bool{"open": false, "busy": true})))
	if el.HasClass("open") || !el.HasClass("busy") {
		t.Errorf("classes = %v, want [busy]", el.Classes())
	}
}

func TestClassNameRejected(t *testing.T) {
	doc := memdom.New()
	_, err := Append(doc.Root(), H("div", Props{"className": "x"}), Options{Surface: doc})
	if !errors.Is(err, ErrClassName) {
		t.Errorf("err = %v, want ErrClassName", err)
	}
}

func TestStyles(t *testing.T) {
	doc, p := mount(t, Div(Style("color", "red"), Style("width", "10px")))
	el := doc.Root().Children()[0]

	update(t, p, Div(Style("color", "blue")))
	if el.Style("color") != "blue" {
		t.Errorf("color = %q, want blue", el.Style("color"))
	}

	update(t, p, H("div", Props{"styles": map[string]any{"color": nil}}))
	if el.Style("color") != "" {
		t.Errorf("color = %q, want removed", el.Style("color"))
	}

	t.Run("non-string value", func(t *testing.T) {
		doc := memdom.New()
		_, err := Append(doc.Root(), H("div", Props{"styles": map[string]any{"width": 10}}), Options{Surface: doc})
		if !errors.Is(err, ErrStyleNotString) {
			t.Errorf("err = %v, want ErrStyleNotString", err)
		}
	})

	t.Run("not a map", func(t *testing.T) {
		doc := memdom.New()
		_, err := Append(doc.Root(), H("div", Props{"styles": "color: red"}), Options{Surface: doc})
		if !errors.Is(err, ErrStyleNotString) {
			t.Errorf("err = %v, want ErrStyleNotString", err)
		}
	})

	t.Run("custom applier", func(t *testing.T) {
		doc := memdom.New()
		var applied []string
		opts := Options{Surface: doc, StyleApplier: func(h Handle, name, value string) {
			applied = append(applied, name+"="+value)
		}}
		if _, err := Append(doc.Root(), Div(Style("opacity", "0")), opts); err != nil {
			t.Fatal(err)
		}
		if len(applied) != 1 || applied[0] != "opacity=0" {
			t.Errorf("applied = %v", applied)
		}
	})
}

func TestHandlers(t *testing.T) {
	clicks := 0
	onClick := func(*Event) { clicks++ }
	doc, p := mount(t, Button(Bind("item-7"), OnClick(onClick), "Add"))
	btn := doc.Root().Children()[0]

	doc.Dispatch(btn, "click", "")
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	update(t, p, Button(Bind("item-7"), OnClick(onClick), "Add"))

	other := 0
	err := p.Update(Button(Bind("item-7"), OnClick(func(*Event) { other++ }), "Add"))
	if !errors.Is(err, ErrHandlerChanged) {
		t.Errorf("err = %v, want ErrHandlerChanged", err)
	}
}

func TestHandlerReceivesBind(t *testing.T) {
	var got any
	doc, _ := mount(t, Button(Bind("sku-1"), OnClick(func(evt *Event) { got = evt.Bind })))
	doc.Dispatch(doc.Root().Children()[0], "click", "")
	if got != "sku-1" {
		t.Errorf("Bind = %v, want sku-1", got)
	}
}

func TestEventHandlerInterceptor(t *testing.T) {
	doc := memdom.New()
	var order []string
	opts := Options{
		Surface: doc,
		EventHandlerInterceptor: func(name string, handler EventHandler, h Handle, props Props) EventHandler {
			return func(evt *Event) {
				handler(evt)
				order = append(order, "after "+name)
			}
		},
	}
	tree := Button(OnClick(func(*Event) { order = append(order, "handler") }))
	if _, err := Append(doc.Root(), tree, opts); err != nil {
		t.Fatal(err)
	}
	doc.Dispatch(doc.Root().Children()[0], "click", "")

	if strings.Join(order, ";") != "handler;after onclick" {
		t.Errorf("order = %v", order)
	}
}

func TestValueKeepsUserEdit(t *testing.T) {
	model := "a"
	onInput := func(evt *Event) { model = evt.Value }
	render := func() *VNode { return Input(Value(model), OnInput(onInput)) }
	doc, p := mount(t, render())
	input := doc.Root().Children()[0]

	doc.Dispatch(input, "input", "ab")
	update(t, p, render())
	for _, patch := range doc.Flush() {
		if patch.Op == protocol.PatchSetProp && patch.Name == PropValue {
			t.Errorf("value was rewritten after an edit: %v", patch)
		}
	}
	if input.Prop(PropValue) != "ab" {
		t.Errorf("value = %v, want ab", input.Prop(PropValue))
	}

	model = ""
	update(t, p, render())
	if input.Prop(PropValue) != "" {
		t.Errorf("value = %v, want reset to empty", input.Prop(PropValue))
	}
}

func TestLifecycleHooks(t *testing.T) {
	var calls []string
	afterCreate := func(h Handle, opts *Options, selector string, props Props, children []*VNode) {
		calls = append(calls, "create "+selector)
	}
	afterUpdate := func(h Handle, opts *Options, selector string, props Props, children []*VNode) {
		calls = append(calls, "update "+selector)
	}
	updateAnimation := func(h Handle, props, previous Props) {
		calls = append(calls, "animate")
	}
	render := func(text string) *VNode {
		return P(AfterCreate(afterCreate), AfterUpdate(afterUpdate), UpdateAnimation(updateAnimation), text)
	}
	_, p := mount(t, render("a"))
	update(t, p, render("a"))
	update(t, p, render("b"))

	want := "create p;update p;update p;animate"
	if got := strings.Join(calls, ";"); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestInvalidHookType(t *testing.T) {
	doc := memdom.New()
	_, err := Append(doc.Root(), H("div", Props{"afterCreate": "nope"}), Options{Surface: doc})
	if !errors.Is(err, ErrInvalidHook) {
		t.Errorf("err = %v, want ErrInvalidHook", err)
	}
}

func TestEnterAnimation(t *testing.T) {
	var entered []string
	enter := func(h Handle, props Props) { entered = append(entered, props[PropKey].(string)) }
	list := func(keys ...string) *VNode {
		return Ul(Range(keys, func(k string, _ int) *VNode {
			return Li(Key(k), EnterAnimation(enter), k)
		}))
	}
	_, p := mount(t, list("a"))
	if len(entered) != 0 {
		t.Errorf("initial render should not animate: %v", entered)
	}
	update(t, p, list("a", "b"))
	if strings.Join(entered, ",") != "b" {
		t.Errorf("entered = %v, want [b]", entered)
	}
}

func TestExitAnimationDefersRemoval(t *testing.T) {
	var done func()
	exit := func(h Handle, remove func(), props Props) { done = remove }
	doc, p := mount(t, Ul(Li(Key(1), ExitAnimation(exit), "bye")))
	ul := doc.Root().Children()[0]
	li := ul.Children()[0]

	update(t, p, Ul())
	if len(ul.Children()) != 1 {
		t.Fatal("node removed before the exit animation finished")
	}
	if li.Style("pointer-events") != "none" {
		t.Errorf("pointer-events = %q, want none", li.Style("pointer-events"))
	}
	done()
	if len(ul.Children()) != 0 {
		t.Error("node still attached after remove was called")
	}
}

type fakeTransitions struct {
	calls []string
}

func (f *fakeTransitions) Enter(h Handle, props Props, token string) {
	f.calls = append(f.calls, "enter "+token)
}

func (f *fakeTransitions) Exit(h Handle, props Props, token string, done func()) {
	f.calls = append(f.calls, "exit "+token)
	done()
}

func TestTransitionTokens(t *testing.T) {
	list := func(items ...string) *VNode {
		return Ul(Range(items, func(s string, _ int) *VNode {
			return Li(Key(s), EnterTransition("fade"), ExitTransition("slide"), s)
		}))
	}

	t.Run("served by Transitions", func(t *testing.T) {
		doc := memdom.New()
		tr := &fakeTransitions{}
		p, err := Append(doc.Root(), list("a"), Options{Surface: doc, Transitions: tr})
		if err != nil {
			t.Fatal(err)
		}
		update(t, p, list("b"))
		if got := strings.Join(tr.calls, ";"); got != "enter fade;exit slide" {
			t.Errorf("calls = %q", got)
		}
		if got := texts(doc.Root().Children()[0]); got != "b" {
			t.Errorf("texts = %q, want b", got)
		}
	})

	t.Run("missing Transitions", func(t *testing.T) {
		_, p := mount(t, list("a"))
		err := p.Update(list("a", "b"))
		if !errors.Is(err, ErrMissingTransitions) {
			t.Errorf("enter err = %v, want ErrMissingTransitions", err)
		}
	})
}

func TestRootSelectorChange(t *testing.T) {
	_, p := mount(t, Div())
	if err := p.Update(Span()); !errors.Is(err, ErrRootSelectorChanged) {
		t.Errorf("err = %v, want ErrRootSelectorChanged", err)
	}
}

func TestResubmittedNodeRejected(t *testing.T) {
	x := Li(Text("x"))
	y := Li(Text("y"))
	_, p := mount(t, Ul(x, y))

	err := p.Update(Ul(y))
	if !errors.Is(err, ErrNodeReused) {
		t.Errorf("err = %v, want ErrNodeReused", err)
	}
}

func TestSVGNamespace(t *testing.T) {
	doc, _ := mount(t, Svg(Use(Href("#icon"))))
	svg := doc.Root().Children()[0]
	use := svg.Children()[0]

	if svg.Namespace() != NamespaceSVG || use.Namespace() != NamespaceSVG {
		t.Errorf("namespaces = %q, %q, want svg", svg.Namespace(), use.Namespace())
	}
	if got := doc.HTML(use); got != `<use xlink:href="#icon"></use>` {
		t.Errorf("HTML = %s", got)
	}
}

func TestAttachmentOperations(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		doc := memdom.New()
		p, err := Create(Span("x"), Options{Surface: doc})
		if err != nil {
			t.Fatal(err)
		}
		container := doc.Parent(p.Handle())
		if got := doc.HTML(container); got != "<div><span>x</span></div>" {
			t.Errorf("HTML = %s", got)
		}
	})

	t.Run("InsertBefore", func(t *testing.T) {
		doc := memdom.New()
		marker := doc.CreateElement("", "hr")
		doc.InsertBefore(doc.Root(), marker, nil)
		if _, err := InsertBefore(marker, H1("top"), Options{Surface: doc}); err != nil {
			t.Fatal(err)
		}
		if got := doc.InnerHTML(doc.Root()); got != "<h1>top</h1><hr>" {
			t.Errorf("HTML = %s", got)
		}
	})

	t.Run("Replace", func(t *testing.T) {
		doc := memdom.New()
		old := doc.CreateElement("", "p")
		doc.InsertBefore(doc.Root(), old, nil)
		p, err := Replace(old, Div("new"), Options{Surface: doc})
		if err != nil {
			t.Fatal(err)
		}
		if got := doc.InnerHTML(doc.Root()); got != "<div>new</div>" {
			t.Errorf("HTML = %s", got)
		}
		update(t, p, Div("newer"))
		if got := doc.InnerHTML(doc.Root()); got != "<div>newer</div>" {
			t.Errorf("HTML after update = %s", got)
		}
	})

	t.Run("Merge", func(t *testing.T) {
		doc := memdom.New()
		existing := doc.CreateElement("", "div")
		doc.InsertBefore(doc.Root(), existing, nil)
		doc.InsertBefore(existing, doc.CreateText("server "), nil)

		p, err := Merge(existing, El("section", Class("merged"), Span("client")), Options{Surface: doc})
		if err != nil {
			t.Fatal(err)
		}
		want := `<div class="merged">server <span>client</span></div>`
		if got := doc.InnerHTML(doc.Root()); got != want {
			t.Errorf("HTML = %s, want %s", got, want)
		}
		if p.Handle() != existing {
			t.Error("Merge should adopt the existing node")
		}
	})

	t.Run("missing surface", func(t *testing.T) {
		if _, err := Create(Div(), Options{}); err == nil {
			t.Error("expected error without a Surface")
		}
	})
}

func BenchmarkKeyedUpdate(b *testing.B) {
	list := func(offset int) *VNode {
		items := make([]*VNode, 100)
		for i := range items {
			k := (i + offset) % 100
			items[i] = Li(Key(k), Textf("item %d", k))
		}
		return Ul(items)
	}
	doc := memdom.New()
	p, err := Append(doc.Root(), list(0), Options{Surface: doc})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Update(list(i % 7)); err != nil {
			b.Fatal(err)
		}
		doc.Flush()
	}
}
