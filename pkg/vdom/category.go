package vdom

import (
	"reflect"
	"strings"

	"github.com/vango-dev/widgetkit/internal/errors"
)

// Category is the kind of a property, resolved once per property from its
// name and value.
type Category uint8

const (
	CategoryEmpty     Category = iota // nil value, skipped
	CategoryIdentity                  // key, bind
	CategoryClass                     // class, immutable after creation
	CategoryClassMap                  // classes
	CategoryStyleMap                  // styles
	CategoryHandler                   // on* with a function value
	CategoryLifecycle                 // afterCreate, afterUpdate
	CategoryAnimation                 // enterAnimation, exitAnimation, updateAnimation
	CategoryValue                     // value
	CategoryAttribute                 // other string values
	CategoryProperty                  // other values
	CategoryUnsupported               // className
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "Empty"
	case CategoryIdentity:
		return "Identity"
	case CategoryClass:
		return "Class"
	case CategoryClassMap:
		return "ClassMap"
	case CategoryStyleMap:
		return "StyleMap"
	case CategoryHandler:
		return "Handler"
	case CategoryLifecycle:
		return "Lifecycle"
	case CategoryAnimation:
		return "Animation"
	case CategoryValue:
		return "Value"
	case CategoryAttribute:
		return "Attribute"
	case CategoryProperty:
		return "Property"
	case CategoryUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Categorize returns the category of the property name with value.
func Categorize(name string, value any) Category {
	switch name {
	case "className":
		return CategoryUnsupported
	case PropKey, PropBind:
		return CategoryIdentity
	case PropClass:
		return CategoryClass
	case PropClasses:
		return CategoryClassMap
	case PropStyles:
		return CategoryStyleMap
	case PropAfterCreate, PropAfterUpdate:
		return CategoryLifecycle
	case PropEnterAnimation, PropExitAnimation, PropUpdateAnimation:
		return CategoryAnimation
	}
	if value == nil {
		return CategoryEmpty
	}
	if strings.HasPrefix(name, "on") && isFunc(value) {
		return CategoryHandler
	}
	if name == PropValue {
		return CategoryValue
	}
	if _, ok := value.(string); ok && name != "innerHTML" {
		return CategoryAttribute
	}
	return CategoryProperty
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// asHandler normalizes the accepted handler shapes.
func asHandler(v any) (EventHandler, bool) {
	switch fn := v.(type) {
	case EventHandler:
		return fn, fn != nil
	case func(*Event):
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(*Event) { fn() }, true
	}
	return nil, false
}

func lifecycleHook(props Props, name string) (LifecycleFunc, error) {
	switch fn := props[name].(type) {
	case nil:
		return nil, nil
	case LifecycleFunc:
		return fn, nil
	case func(Handle, *Options, string, Props, []*VNode):
		return fn, nil
	}
	return nil, invalidHook(name, props[name])
}

func updateAnimationHook(props Props) (UpdateAnimationFunc, error) {
	switch fn := props[PropUpdateAnimation].(type) {
	case nil:
		return nil, nil
	case UpdateAnimationFunc:
		return fn, nil
	case func(Handle, Props, Props):
		return fn, nil
	}
	return nil, invalidHook(PropUpdateAnimation, props[PropUpdateAnimation])
}

func invalidHook(name string, value any) *errors.Error {
	return errors.New("W112").WithDetailf("%s has type %T", name, value)
}

// classNames normalizes a classes property.
func classNames(v any) map[string]bool {
	switch m := v.(type) {
	case map[string]bool:
		return m
	case map[string]any:
		out := make(map[string]bool, len(m))
		for name, on := range m {
			out[name] = truthy(on)
		}
		return out
	}
	return nil
}

// styleValues normalizes a styles property.
func styleValues(v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for name, value := range m {
			out[name] = value
		}
		return out, nil
	case map[string]any:
		return m, nil
	}
	return nil, errors.New("W103").WithDetailf("styles has type %T", v)
}

// truthy mirrors the loose truthiness used for classes and cleared values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	return true
}
