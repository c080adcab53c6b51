package memdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/widgetkit/pkg/vdom"
)

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTML serializes h and its descendants. Classes render as a class
// attribute and styles as a style attribute. Boolean properties render as
// bare attributes when true; string and number properties as attributes.
func (d *Document) HTML(h vdom.Handle) string {
	var sb strings.Builder
	writeHTML(&sb, node(h))
	return sb.String()
}

// InnerHTML serializes the children of h.
func (d *Document) InnerHTML(h vdom.Handle) string {
	var sb strings.Builder
	for _, c := range node(h).children {
		writeHTML(&sb, c)
	}
	return sb.String()
}

func writeHTML(sb *strings.Builder, n *Node) {
	if n.IsText() {
		sb.WriteString(escapeHTML(n.data))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.tag)
	if len(n.classes) > 0 {
		writeAttr(sb, "class", strings.Join(n.classes, " "))
	}
	for _, name := range sortedKeys(n.attrs) {
		a := n.attrs[name]
		if a.namespace == vdom.NamespaceXLink {
			name = "xlink:" + name
		}
		writeAttr(sb, name, a.value)
	}
	for _, name := range sortedKeys(n.props) {
		if _, shadowed := n.attrs[name]; shadowed || strings.HasPrefix(name, "on") {
			continue
		}
		switch v := n.props[name].(type) {
		case bool:
			if v {
				sb.WriteByte(' ')
				sb.WriteString(name)
			}
		case string:
			writeAttr(sb, name, v)
		case int, int64, float64:
			writeAttr(sb, name, fmt.Sprint(v))
		}
	}
	if len(n.styles) > 0 {
		parts := make([]string, 0, len(n.styles))
		for _, name := range sortedKeys(n.styles) {
			parts = append(parts, name+": "+n.styles[name])
		}
		writeAttr(sb, "style", strings.Join(parts, "; "))
	}
	sb.WriteByte('>')

	if voidElements[n.tag] {
		return
	}
	for _, c := range n.children {
		writeHTML(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(escapeAttr(value))
	sb.WriteByte('"')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for a double-quoted attribute value, including
// whitespace that would otherwise be normalized by the parser.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
