package memdom

import (
	"encoding/json"
	"strings"

	"github.com/vango-dev/widgetkit/pkg/protocol"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

// RootID is the id of the document root.
const RootID = 1

// Document is an in-memory node tree implementing vdom.Surface.
type Document struct {
	root   *Node
	nodes  map[uint64]*Node
	nextID uint64
	log    []protocol.Patch
}

var _ vdom.Surface = (*Document)(nil)

// New creates an empty document with a "body" root.
func New() *Document {
	d := &Document{nodes: make(map[uint64]*Node)}
	d.root = d.newNode("", "body")
	return d
}

// Root returns the document root. Projections are usually appended to it.
func (d *Document) Root() *Node { return d.root }

// Lookup returns the attached node with id, or nil.
func (d *Document) Lookup(id uint64) *Node { return d.nodes[id] }

// Patches returns the mutations recorded since the last Flush.
func (d *Document) Patches() []protocol.Patch { return d.log }

// MutationCount returns the number of mutations recorded since the last
// Flush.
func (d *Document) MutationCount() int { return len(d.log) }

// Flush returns the recorded mutations and starts a new log.
func (d *Document) Flush() []protocol.Patch {
	out := d.log
	d.log = nil
	return out
}

func (d *Document) newNode(namespace, tag string) *Node {
	d.nextID++
	n := &Node{id: d.nextID, namespace: namespace, tag: tag}
	d.nodes[n.id] = n
	return n
}

func (d *Document) record(p protocol.Patch) {
	d.log = append(d.log, p)
}

func node(h vdom.Handle) *Node {
	if h == nil {
		return nil
	}
	return h.(*Node)
}

func id(n *Node) uint64 {
	if n == nil {
		return 0
	}
	return n.id
}

// handle converts n to a Handle, keeping "no node" an untyped nil.
func handle(n *Node) vdom.Handle {
	if n == nil {
		return nil
	}
	return n
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(namespace, tag string) vdom.Handle {
	n := d.newNode(namespace, tag)
	d.record(protocol.Patch{Op: protocol.PatchCreateElement, ID: n.id, Namespace: namespace, Name: tag})
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) vdom.Handle {
	n := d.newNode("", "")
	n.data = text
	d.record(protocol.Patch{Op: protocol.PatchCreateText, ID: n.id, Value: text})
	return n
}

// InsertBefore inserts child into parent before ref, or last when ref is
// nil. A child that is already attached is moved.
func (d *Document) InsertBefore(parent, child, ref vdom.Handle) {
	p, c, r := node(parent), node(child), node(ref)
	c.detach()
	i := len(p.children)
	if r != nil {
		if ri := p.indexOf(r); ri >= 0 {
			i = ri
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = c
	c.parent = p
	d.record(protocol.Patch{Op: protocol.PatchInsertBefore, ID: c.id, Parent: p.id, Ref: id(r)})
}

// RemoveChild detaches child from parent.
func (d *Document) RemoveChild(parent, child vdom.Handle) {
	p, c := node(parent), node(child)
	if c.parent != p {
		return
	}
	c.detach()
	d.record(protocol.Patch{Op: protocol.PatchRemoveChild, ID: c.id, Parent: p.id})
	d.release(c)
}

// ReplaceChild puts newChild in the place of oldChild.
func (d *Document) ReplaceChild(parent, newChild, oldChild vdom.Handle) {
	p, nc, oc := node(parent), node(newChild), node(oldChild)
	i := p.indexOf(oc)
	if i < 0 {
		return
	}
	nc.detach()
	i = p.indexOf(oc)
	p.children[i] = nc
	nc.parent = p
	oc.parent = nil
	d.record(protocol.Patch{Op: protocol.PatchReplaceChild, ID: nc.id, Parent: p.id, Ref: oc.id})
	d.release(oc)
}

// release forgets the ids of a removed subtree.
func (d *Document) release(n *Node) {
	n.walk(func(x *Node) { delete(d.nodes, x.id) })
}

// Parent returns the parent of h, or nil.
func (d *Document) Parent(h vdom.Handle) vdom.Handle {
	return handle(node(h).parent)
}

// FirstChild returns the first child of h, or nil.
func (d *Document) FirstChild(h vdom.Handle) vdom.Handle {
	n := node(h)
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// SetText replaces the content of h with a single text node.
func (d *Document) SetText(h vdom.Handle, text string) {
	n := node(h)
	for _, c := range n.children {
		c.parent = nil
		d.release(c)
	}
	t := d.newNode("", "")
	t.data = text
	t.parent = n
	n.children = []*Node{t}
	d.record(protocol.Patch{Op: protocol.PatchSetText, ID: n.id, Ref: t.id, Value: text})
}

// AddClass adds a class to h.
func (d *Document) AddClass(h vdom.Handle, name string) {
	n := node(h)
	if n.HasClass(name) {
		return
	}
	n.classes = append(n.classes, name)
	d.record(protocol.Patch{Op: protocol.PatchAddClass, ID: n.id, Name: name})
}

// RemoveClass removes a class from h.
func (d *Document) RemoveClass(h vdom.Handle, name string) {
	n := node(h)
	i := n.classIndex(name)
	if i < 0 {
		return
	}
	n.classes = append(n.classes[:i], n.classes[i+1:]...)
	d.record(protocol.Patch{Op: protocol.PatchRemoveClass, ID: n.id, Name: name})
}

// SetAttribute sets an attribute of h.
func (d *Document) SetAttribute(h vdom.Handle, namespace, name, value string) {
	n := node(h)
	if n.attrs == nil {
		n.attrs = make(map[string]attribute)
	}
	n.attrs[name] = attribute{namespace: namespace, value: value}
	d.record(protocol.Patch{Op: protocol.PatchSetAttr, ID: n.id, Namespace: namespace, Name: name, Value: value})
}

// Property returns a property of h, or nil.
func (d *Document) Property(h vdom.Handle, name string) any {
	return node(h).props[name]
}

// SetProperty sets a property of h. The value travels as JSON.
func (d *Document) SetProperty(h vdom.Handle, name string, value any) {
	n := node(h)
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	d.record(protocol.Patch{Op: protocol.PatchSetProp, ID: n.id, Name: name, Value: jsonValue(value)})
}

func jsonValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// SetStyle sets a style of h. An empty value removes it.
func (d *Document) SetStyle(h vdom.Handle, name, value string) {
	n := node(h)
	if value == "" {
		delete(n.styles, name)
	} else {
		if n.styles == nil {
			n.styles = make(map[string]string)
		}
		n.styles[name] = value
	}
	d.record(protocol.Patch{Op: protocol.PatchSetStyle, ID: n.id, Name: name, Value: value})
}

// SetHandler binds fn to the handler property name ("onclick").
func (d *Document) SetHandler(h vdom.Handle, name string, fn vdom.EventHandler) {
	n := node(h)
	if n.handlers == nil {
		n.handlers = make(map[string]vdom.EventHandler)
	}
	n.handlers[name] = fn
	d.record(protocol.Patch{Op: protocol.PatchListen, ID: n.id, Name: strings.TrimPrefix(name, "on")})
}

// Dispatch fires an event of eventType at n. For input and change events
// value becomes the live value of n first, the way a user edit would. It
// reports whether a handler ran.
func (d *Document) Dispatch(n *Node, eventType, value string) bool {
	if eventType == "input" || eventType == "change" {
		if n.props == nil {
			n.props = make(map[string]any)
		}
		n.props[vdom.PropValue] = value
	}
	fn, ok := n.handlers["on"+eventType]
	if !ok {
		return false
	}
	fn(&vdom.Event{Type: eventType, Target: n, Value: value})
	return true
}

// DispatchEvent fires a client event, as received over the wire.
func (d *Document) DispatchEvent(ev *protocol.Event) bool {
	n := d.nodes[ev.Target]
	if n == nil {
		return false
	}
	return d.Dispatch(n, ev.Type, ev.Value)
}

// Find returns the first node under the root, in document order, for
// which match returns true.
func (d *Document) Find(match func(*Node) bool) *Node {
	var found *Node
	d.root.walk(func(n *Node) {
		if found == nil && match(n) {
			found = n
		}
	})
	return found
}

// FindAll returns every node under the root for which match returns true.
func (d *Document) FindAll(match func(*Node) bool) []*Node {
	var found []*Node
	d.root.walk(func(n *Node) {
		if match(n) {
			found = append(found, n)
		}
	})
	return found
}

// ByTag matches elements with the tag.
func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool { return n.tag == tag }
}

// ByClass matches elements carrying the class.
func ByClass(class string) func(*Node) bool {
	return func(n *Node) bool { return n.HasClass(class) }
}

// Snapshot returns the patches that rebuild the current tree under the
// root on an empty mirror.
func (d *Document) Snapshot() []protocol.Patch {
	var out []protocol.Patch
	for _, c := range d.root.children {
		out = snapshot(out, c)
	}
	return out
}

func snapshot(out []protocol.Patch, n *Node) []protocol.Patch {
	if n.IsText() {
		out = append(out, protocol.Patch{Op: protocol.PatchCreateText, ID: n.id, Value: n.data})
		return append(out, protocol.Patch{Op: protocol.PatchInsertBefore, ID: n.id, Parent: n.parent.id})
	}
	out = append(out, protocol.Patch{Op: protocol.PatchCreateElement, ID: n.id, Namespace: n.namespace, Name: n.tag})
	for _, name := range sortedKeys(n.attrs) {
		a := n.attrs[name]
		out = append(out, protocol.Patch{Op: protocol.PatchSetAttr, ID: n.id, Namespace: a.namespace, Name: name, Value: a.value})
	}
	for _, class := range n.classes {
		out = append(out, protocol.Patch{Op: protocol.PatchAddClass, ID: n.id, Name: class})
	}
	for _, name := range sortedKeys(n.styles) {
		out = append(out, protocol.Patch{Op: protocol.PatchSetStyle, ID: n.id, Name: name, Value: n.styles[name]})
	}
	for _, name := range sortedKeys(n.handlers) {
		out = append(out, protocol.Patch{Op: protocol.PatchListen, ID: n.id, Name: strings.TrimPrefix(name, "on")})
	}
	for _, c := range n.children {
		out = snapshot(out, c)
	}
	// properties last so a select's options exist before its value
	for _, name := range sortedKeys(n.props) {
		out = append(out, protocol.Patch{Op: protocol.PatchSetProp, ID: n.id, Name: name, Value: jsonValue(n.props[name])})
	}
	return append(out, protocol.Patch{Op: protocol.PatchInsertBefore, ID: n.id, Parent: n.parent.id})
}
