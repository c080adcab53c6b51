package vdom

// El builds an element from a mix of attributes and children.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, []any,
// string and any other value, which becomes a text leaf. Attributes are
// folded into the element's properties; when there are none the element
// has nil properties. A lone string child becomes the element's Text.
func El(selector string, args ...any) *VNode {
	var props Props
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			props = v.applyTo(props)
		case []Attr:
			for _, a := range v {
				props = a.applyTo(props)
			}
		case Props:
			for _, name := range sortedNames(v) {
				props = Attr{Key: name, Value: v[name]}.applyTo(props)
			}
		default:
			children = append(children, arg)
		}
	}

	if props == nil {
		return H(selector, children...)
	}
	return H(selector, append([]any{props}, children...)...)
}

// Document structure and sectioning

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }
func H4(args ...any) *VNode      { return El("h4", args...) }
func H5(args ...any) *VNode      { return El("h5", args...) }
func Small(args ...any) *VNode   { return El("small", args...) }
func Strong(args ...any) *VNode  { return El("strong", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Img(args ...any) *VNode     { return El("img", args...) }

// Form elements

func Form(args ...any) *VNode     { return El("form", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }

// SVG elements

func Svg(args ...any) *VNode  { return El("svg", args...) }
func Path(args ...any) *VNode { return El("path", args...) }
func Use(args ...any) *VNode  { return El("use", args...) }
