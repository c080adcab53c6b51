package vdom

import "strings"

// Attr is a single property, folded into an element's Props by El.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// applyTo sets a on props, allocating props on first use. Repeated
// classes and styles attributes merge; a repeated class attribute joins.
func (a Attr) applyTo(props Props) Props {
	if a.IsEmpty() {
		return props
	}
	if props == nil {
		props = make(Props)
	}
	switch a.Key {
	case PropClasses:
		merged := make(map[string]bool)
		for name, on := range classNames(props[PropClasses]) {
			merged[name] = on
		}
		for name, on := range classNames(a.Value) {
			merged[name] = on
		}
		props[PropClasses] = merged
	case PropStyles:
		merged := make(map[string]string)
		if existing, ok := props[PropStyles].(map[string]string); ok {
			for name, value := range existing {
				merged[name] = value
			}
		}
		if add, ok := a.Value.(map[string]string); ok {
			for name, value := range add {
				merged[name] = value
			}
			props[PropStyles] = merged
		} else {
			props[PropStyles] = a.Value
		}
	case PropClass:
		if existing, ok := props[PropClass].(string); ok && existing != "" {
			props[PropClass] = existing + " " + classString(a.Value)
		} else {
			props[PropClass] = a.Value
		}
	default:
		props[a.Key] = a.Value
	}
	return props
}

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// Key sets the reconciliation key.
func Key(key any) Attr { return attr(PropKey, key) }

// Bind sets the bind value, used as key fallback and passed to handlers.
func Bind(v any) Attr { return attr(PropBind, v) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the creation-time classes, joining multiple classes with
// spaces. The value may not change on later renders; use ClassIf or
// Classes for conditional classes.
func Class(classes ...string) Attr { return attr(PropClass, strings.Join(classes, " ")) }

// Classes sets conditional classes.
func Classes(classes map[string]bool) Attr { return attr(PropClasses, classes) }

// ClassIf toggles a single conditional class.
func ClassIf(condition bool, class string) Attr {
	return attr(PropClasses, map[string]bool{class: condition})
}

// Styles sets inline styles.
func Styles(styles map[string]string) Attr { return attr(PropStyles, styles) }

// Style sets a single inline style.
func Style(name, value string) Attr {
	return attr(PropStyles, map[string]string{name: value})
}

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Link and media attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value property. Updates never clobber an edit in progress.
func Value(value string) Attr { return attr(PropValue, value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled property.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Selected sets the selected property.
func Selected(selected bool) Attr { return attr("selected", selected) }

// Checked sets the checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr {
	if hidden {
		return attr("aria-hidden", "true")
	}
	return attr("aria-hidden", "false")
}

// Lifecycle and animation hooks

// AfterCreate runs fn once the node's output was created.
func AfterCreate(fn LifecycleFunc) Attr { return attr(PropAfterCreate, fn) }

// AfterUpdate runs fn after every update of the node.
func AfterUpdate(fn LifecycleFunc) Attr { return attr(PropAfterUpdate, fn) }

// EnterAnimation runs fn when the node is added to an existing parent.
func EnterAnimation(fn EnterAnimationFunc) Attr { return attr(PropEnterAnimation, fn) }

// EnterTransition requests the named enter transition from Options.Transitions.
func EnterTransition(token string) Attr { return attr(PropEnterAnimation, token) }

// ExitAnimation runs fn instead of removing the node immediately.
func ExitAnimation(fn ExitAnimationFunc) Attr { return attr(PropExitAnimation, fn) }

// ExitTransition requests the named exit transition from Options.Transitions.
func ExitTransition(token string) Attr { return attr(PropExitAnimation, token) }

// UpdateAnimation runs fn after the node's properties or text changed.
func UpdateAnimation(fn UpdateAnimationFunc) Attr { return attr(PropUpdateAnimation, fn) }
