package memdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/widgetkit/pkg/vdom"
)

type attribute struct {
	namespace string
	value     string
}

// Node is an element or text node of a Document.
type Node struct {
	id        uint64
	namespace string
	tag       string // "" for text nodes
	data      string

	parent   *Node
	children []*Node

	attrs    map[string]attribute
	classes  []string
	styles   map[string]string
	props    map[string]any
	handlers map[string]vdom.EventHandler
}

// ID returns the document-unique id of n.
func (n *Node) ID() uint64 { return n.id }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.tag == "" }

// Tag returns the tag name of an element.
func (n *Node) Tag() string { return n.tag }

// Namespace returns the namespace the element was created in.
func (n *Node) Namespace() string { return n.namespace }

// Parent returns the parent of n, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes of n. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Data returns the content of a text node.
func (n *Node) Data() string { return n.data }

// Text returns the concatenated text of n and its descendants.
func (n *Node) Text() string {
	if n.IsText() {
		return n.data
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	a, ok := n.attrs[name]
	return a.value, ok
}

// HasClass reports whether n carries the class.
func (n *Node) HasClass(name string) bool {
	return n.classIndex(name) >= 0
}

// Classes returns the classes of n in the order they were added.
func (n *Node) Classes() []string { return n.classes }

// Style returns the value of a style, or "".
func (n *Node) Style(name string) string { return n.styles[name] }

// Prop returns the value of a property, or nil.
func (n *Node) Prop(name string) any { return n.props[name] }

// HasHandler reports whether a handler is bound for the event type.
func (n *Node) HasHandler(eventType string) bool {
	_, ok := n.handlers["on"+eventType]
	return ok
}

func (n *Node) classIndex(name string) int {
	for i, c := range n.classes {
		if c == name {
			return i
		}
	}
	return -1
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
