//go:build js && wasm

// Package jsdom is the browser Surface: it patches the page's DOM through
// syscall/js and schedules frames with requestAnimationFrame.
//
//	doc := jsdom.New()
//	p := projector.New(jsdom.AnimationFrames(), vdom.Options{Surface: doc})
//	p.Append(doc.Body(), render)
package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/vango-dev/widgetkit/pkg/vdom"
)

const idProperty = "__widgetkit"

// Node wraps a DOM node. js.Value is not comparable, so handles are
// pointers to Node.
type Node struct {
	id       int
	v        js.Value
	handlers map[string]js.Func
}

// Value returns the wrapped DOM node.
func (n *Node) Value() js.Value { return n.v }

// Document is a vdom.Surface over the browser DOM. It must only be used
// from the goroutine running the JS event loop callbacks.
type Document struct {
	doc    js.Value
	nodes  map[int]*Node
	nextID int
}

var _ vdom.Surface = (*Document)(nil)

// New wraps the global document.
func New() *Document {
	return &Document{
		doc:   js.Global().Get("document"),
		nodes: make(map[int]*Node),
	}
}

// Body returns the document body.
func (d *Document) Body() *Node {
	return d.wrap(d.doc.Get("body"))
}

// Query returns the first element matching the CSS selector, or nil.
func (d *Document) Query(selector string) *Node {
	v := d.doc.Call("querySelector", selector)
	if v.IsNull() {
		return nil
	}
	return d.wrap(v)
}

// wrap returns the Node for v, creating it on first sight.
func (d *Document) wrap(v js.Value) *Node {
	if id := v.Get(idProperty); id.Type() == js.TypeNumber {
		if n, ok := d.nodes[id.Int()]; ok {
			return n
		}
	}
	d.nextID++
	n := &Node{id: d.nextID, v: v}
	v.Set(idProperty, n.id)
	d.nodes[n.id] = n
	return n
}

func node(h vdom.Handle) *Node {
	return h.(*Node)
}

func (d *Document) CreateElement(namespace, tag string) vdom.Handle {
	if namespace != "" {
		return d.wrap(d.doc.Call("createElementNS", namespace, tag))
	}
	return d.wrap(d.doc.Call("createElement", tag))
}

func (d *Document) CreateText(text string) vdom.Handle {
	return d.wrap(d.doc.Call("createTextNode", text))
}

func (d *Document) InsertBefore(parent, child, ref vdom.Handle) {
	r := js.Null()
	if ref != nil {
		r = node(ref).v
	}
	node(parent).v.Call("insertBefore", node(child).v, r)
}

func (d *Document) RemoveChild(parent, child vdom.Handle) {
	node(parent).v.Call("removeChild", node(child).v)
	d.release(node(child))
}

func (d *Document) ReplaceChild(parent, newChild, oldChild vdom.Handle) {
	node(parent).v.Call("replaceChild", node(newChild).v, node(oldChild).v)
	d.release(node(oldChild))
}

// Parent returns the parent node, or an untyped nil.
func (d *Document) Parent(h vdom.Handle) vdom.Handle {
	p := node(h).v.Get("parentNode")
	if p.IsNull() || p.IsUndefined() {
		return nil
	}
	return d.wrap(p)
}

// FirstChild returns the first child node, or an untyped nil.
func (d *Document) FirstChild(h vdom.Handle) vdom.Handle {
	c := node(h).v.Get("firstChild")
	if c.IsNull() || c.IsUndefined() {
		return nil
	}
	return d.wrap(c)
}

func (d *Document) SetText(h vdom.Handle, text string) {
	node(h).v.Set("textContent", text)
}

func (d *Document) AddClass(h vdom.Handle, name string) {
	node(h).v.Get("classList").Call("add", name)
}

func (d *Document) RemoveClass(h vdom.Handle, name string) {
	node(h).v.Get("classList").Call("remove", name)
}

func (d *Document) SetAttribute(h vdom.Handle, namespace, name, value string) {
	if namespace != "" {
		node(h).v.Call("setAttributeNS", namespace, name, value)
		return
	}
	node(h).v.Call("setAttribute", name, value)
}

// Property reads a DOM property as a string, bool or float64.
func (d *Document) Property(h vdom.Handle, name string) any {
	v := node(h).v.Get(name)
	switch v.Type() {
	case js.TypeString:
		return v.String()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	}
	return nil
}

func (d *Document) SetProperty(h vdom.Handle, name string, value any) {
	node(h).v.Set(name, toJS(value))
}

func (d *Document) SetStyle(h vdom.Handle, name, value string) {
	node(h).v.Get("style").Set(name, value)
}

// SetHandler binds fn as the node's on<event> property, replacing and
// releasing any previous handler.
func (d *Document) SetHandler(h vdom.Handle, name string, fn vdom.EventHandler) {
	n := node(h)
	if n.handlers == nil {
		n.handlers = make(map[string]js.Func)
	}
	if old, ok := n.handlers[name]; ok {
		old.Release()
	}
	eventType := name[2:]
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		evt := &vdom.Event{Type: eventType, Target: n}
		if len(args) > 0 {
			evt.Native = args[0]
		}
		if v := n.v.Get("value"); v.Type() == js.TypeString {
			evt.Value = v.String()
		}
		fn(evt)
		return nil
	})
	n.handlers[name] = f
	n.v.Set(name, f)
}

// release forgets n and every wrapped descendant and frees their
// handlers.
func (d *Document) release(n *Node) {
	for c := n.v.Get("firstChild"); !c.IsNull(); c = c.Get("nextSibling") {
		if id := c.Get(idProperty); id.Type() == js.TypeNumber {
			if child, ok := d.nodes[id.Int()]; ok {
				d.release(child)
			}
		}
	}
	for name, f := range n.handlers {
		n.v.Set(name, js.Null())
		f.Release()
	}
	n.handlers = nil
	delete(d.nodes, n.id)
	n.v.Delete(idProperty)
}

func toJS(value any) any {
	switch v := value.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, js.Value:
		return v
	case []any, map[string]any:
		return v
	default:
		return fmt.Sprint(v)
	}
}
