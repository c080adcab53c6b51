package vdom

import "fmt"

// H builds an element description.
//
// The first argument is taken as the element's properties when it is a
// Props or a map[string]any; everything after it is a child. A single
// remaining string (or a one-element []string) becomes the element's Text.
// Nested slices are flattened, nil entries are dropped and values that are
// not nodes are wrapped as text leaves.
func H(selector string, args ...any) *VNode {
	node := &VNode{Selector: selector}

	rest := args
	if len(args) > 0 {
		switch props := args[0].(type) {
		case Props:
			node.Properties = props
			rest = args[1:]
		case map[string]any:
			node.Properties = Props(props)
			rest = args[1:]
		}
	}

	if len(rest) == 1 {
		if text, ok := singleText(rest[0]); ok {
			node.Text = text
			return node
		}
	}

	node.Children = make([]*VNode, 0, len(rest))
	node.Children = appendChildren(node.Children, rest)
	return node
}

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{Text: content}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// singleText recognizes the single text child shortcut.
func singleText(arg any) (string, bool) {
	switch v := arg.(type) {
	case string:
		return v, true
	case []string:
		if len(v) == 1 {
			return v[0], true
		}
	case []any:
		if len(v) == 1 {
			if s, ok := v[0].(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

func appendChildren(children []*VNode, items []any) []*VNode {
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				children = append(children, v)
			}
		case []*VNode:
			for _, child := range v {
				if child != nil {
					children = append(children, child)
				}
			}
		case []any:
			children = appendChildren(children, v)
		case []string:
			for _, s := range v {
				children = append(children, Text(s))
			}
		case string:
			children = append(children, Text(v))
		default:
			children = append(children, Text(fmt.Sprint(v)))
		}
	}
	return children
}
