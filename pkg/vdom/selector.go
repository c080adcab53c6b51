package vdom

// Selector holds the creation instructions parsed from a selector string.
type Selector struct {
	Tag     string
	Classes []string
	ID      string
}

// ParseSelector parses "tag.class#id" style selectors. Classes and the id
// may appear in any order after the tag. Parsing is best effort: empty
// segments are skipped, the last id wins and a missing tag means "div".
func ParseSelector(selector string) Selector {
	var sel Selector
	var kind byte
	start := 0
	for i := 0; i <= len(selector); i++ {
		if i < len(selector) && selector[i] != '.' && selector[i] != '#' {
			continue
		}
		found := selector[start:i]
		switch kind {
		case '.':
			if found != "" {
				sel.Classes = append(sel.Classes, found)
			}
		case '#':
			if found != "" {
				sel.ID = found
			}
		default:
			sel.Tag = found
		}
		if i < len(selector) {
			kind = selector[i]
		}
		start = i + 1
	}
	if sel.Tag == "" {
		sel.Tag = "div"
	}
	return sel
}

// IsSVG reports whether the selector switches to the SVG namespace.
func (s Selector) IsSVG() bool {
	return s.Tag == "svg"
}
