package vdom

import "github.com/vango-dev/widgetkit/internal/identity"

// Reserved property names.
const (
	PropKey             = "key"
	PropBind            = "bind"
	PropClass           = "class"
	PropClasses         = "classes"
	PropStyles          = "styles"
	PropValue           = "value"
	PropEnterAnimation  = "enterAnimation"
	PropExitAnimation   = "exitAnimation"
	PropUpdateAnimation = "updateAnimation"
	PropAfterCreate     = "afterCreate"
	PropAfterUpdate     = "afterUpdate"
)

// VNode describes one output element or text leaf.
//
// A text leaf has an empty Selector and carries Text. An element carries a
// Selector, optional Properties and either Children or Text; an empty Text
// means the element has no text shortcut.
type VNode struct {
	Selector   string
	Properties Props
	Children   []*VNode
	Text       string
}

// Props holds an element's properties.
type Props map[string]any

// IsText reports whether v is a text leaf.
func (v *VNode) IsText() bool {
	return v.Selector == ""
}

// Key returns the identity key of v: the "key" property, falling back to
// "bind". It returns nil when neither is set.
func (v *VNode) Key() any {
	if v.Properties == nil {
		return nil
	}
	if key, ok := v.Properties[PropKey]; ok && key != nil {
		return key
	}
	return v.Properties[PropBind]
}

// String returns the selector of v, or "#text" for text leaves.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.IsText() {
		return "#text"
	}
	return v.Selector
}

// Same reports whether a and b describe the same output node, in which case
// the engine patches the existing output instead of replacing it.
func Same(a, b *VNode) bool {
	if a.Selector != b.Selector {
		return false
	}
	if a.IsText() {
		return true
	}
	if a.Properties != nil && b.Properties != nil {
		if !identity.Equal(a.Key(), b.Key()) {
			return false
		}
		return identity.Equal(a.Properties[PropBind], b.Properties[PropBind])
	}
	return a.Properties == nil && b.Properties == nil
}
