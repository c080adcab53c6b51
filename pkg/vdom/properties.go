package vdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/widgetkit/internal/errors"
	"github.com/vango-dev/widgetkit/internal/identity"
)

// inputValueProp holds the value snapshot taken by the oninput wrapper.
const inputValueProp = "oninput-value"

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// setProperties applies the properties of a freshly created node.
func setProperties(h Handle, node *VNode, opts *Options) error {
	props := node.Properties
	if props == nil {
		return nil
	}
	s := opts.Surface
	for _, name := range sortedNames(props) {
		value := props[name]
		switch Categorize(name, value) {
		case CategoryUnsupported:
			return errors.New("W109").WithDetailf("on %s", node.Selector)

		case CategoryClass:
			for _, token := range strings.Fields(classString(value)) {
				s.AddClass(h, token)
			}

		case CategoryClassMap:
			classes := classNames(value)
			for _, className := range sortedNames(classes) {
				if classes[className] {
					s.AddClass(h, className)
				}
			}

		case CategoryStyleMap:
			styles, err := styleValues(value)
			if err != nil {
				return err
			}
			for _, styleName := range sortedNames(styles) {
				styleValue := styles[styleName]
				if !truthy(styleValue) {
					continue
				}
				str, ok := styleValue.(string)
				if !ok {
					return errors.New("W103").WithDetailf("%s style %q has type %T", node.Selector, styleName, styleValue)
				}
				opts.StyleApplier(h, styleName, str)
			}

		case CategoryHandler:
			fn, ok := asHandler(value)
			if !ok {
				return invalidHook(name, value)
			}
			bindHandler(h, name, fn, props, opts)

		case CategoryValue, CategoryProperty:
			s.SetProperty(h, name, value)

		case CategoryAttribute:
			setAttribute(h, name, value.(string), opts)

		case CategoryEmpty, CategoryIdentity, CategoryLifecycle, CategoryAnimation:
			// not applied to the output
		}
	}
	return nil
}

func bindHandler(h Handle, name string, fn EventHandler, props Props, opts *Options) {
	s := opts.Surface
	bind := props[PropBind]
	declared := fn
	fn = func(evt *Event) {
		evt.Bind = bind
		declared(evt)
	}
	if opts.EventHandlerInterceptor != nil {
		fn = opts.EventHandlerInterceptor(name, fn, h, props)
	}
	if name == "oninput" {
		inner := fn
		fn = func(evt *Event) {
			// Snapshot the live value so a render scheduled before the
			// handler runs does not overwrite the edit.
			s.SetProperty(h, inputValueProp, s.Property(h, PropValue))
			inner(evt)
		}
	}
	s.SetHandler(h, name, fn)
}

func setAttribute(h Handle, name, value string, opts *Options) {
	if opts.Namespace == NamespaceSVG && name == "href" {
		opts.Surface.SetAttribute(h, NamespaceXLink, name, value)
		return
	}
	opts.Surface.SetAttribute(h, "", name, value)
}

func classString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// updateProperties patches the properties of an existing node and reports
// whether anything changed.
func updateProperties(h Handle, previous, node *VNode, opts *Options) (bool, error) {
	props := node.Properties
	if props == nil {
		return false, nil
	}
	prevProps := previous.Properties
	s := opts.Surface
	updated := false

	for _, name := range sortedNames(props) {
		value := props[name]
		prevValue := prevProps[name]

		switch Categorize(name, value) {
		case CategoryUnsupported:
			return updated, errors.New("W109").WithDetailf("on %s", node.Selector)

		case CategoryClass:
			if !identity.Equal(prevValue, value) {
				return updated, errors.New("W102").WithDetailf("%s changed class from %q to %q",
					node.Selector, classString(prevValue), classString(value))
			}

		case CategoryClassMap:
			classes, prevClasses := classNames(value), classNames(prevValue)
			for _, className := range sortedNames(classes) {
				on := classes[className]
				if on == prevClasses[className] {
					continue
				}
				updated = true
				if on {
					s.AddClass(h, className)
				} else {
					s.RemoveClass(h, className)
				}
			}

		case CategoryStyleMap:
			styles, err := styleValues(value)
			if err != nil {
				return updated, err
			}
			prevStyles, err := styleValues(prevValue)
			if err != nil {
				return updated, err
			}
			for _, styleName := range sortedNames(styles) {
				newStyle, oldStyle := styles[styleName], prevStyles[styleName]
				if identity.Equal(newStyle, oldStyle) {
					continue
				}
				updated = true
				if !truthy(newStyle) {
					opts.StyleApplier(h, styleName, "")
					continue
				}
				str, ok := newStyle.(string)
				if !ok {
					return updated, errors.New("W103").WithDetailf("%s style %q has type %T", node.Selector, styleName, newStyle)
				}
				opts.StyleApplier(h, styleName, str)
			}

		case CategoryIdentity, CategoryLifecycle, CategoryAnimation:
			// read from the new properties when they fire

		default:
			if _, wasString := prevValue.(string); wasString && !truthy(value) {
				value = ""
			}
			if name == PropValue {
				if !identity.Equal(s.Property(h, name), value) && !identity.Equal(s.Property(h, inputValueProp), value) {
					s.SetProperty(h, name, value)
					s.SetProperty(h, inputValueProp, nil)
				}
				// otherwise leave the live value alone so the caret does not jump
				if !identity.Equal(value, prevValue) {
					updated = true
				}
				continue
			}
			if identity.Equal(value, prevValue) {
				continue
			}
			if isFunc(value) {
				return updated, errors.New("W105").WithDetailf("property %s on %s", name, node.Selector)
			}
			if str, ok := value.(string); ok && name != "innerHTML" {
				setAttribute(h, name, str, opts)
			} else if !identity.Equal(s.Property(h, name), value) {
				s.SetProperty(h, name, value)
			}
			updated = true
		}
	}
	return updated, nil
}
