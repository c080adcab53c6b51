package vdom

import (
	"log/slog"

	"github.com/vango-dev/widgetkit/internal/errors"
)

// LifecycleFunc is the type of the afterCreate and afterUpdate hooks.
type LifecycleFunc func(h Handle, opts *Options, selector string, props Props, children []*VNode)

// EnterAnimationFunc runs after a node was added to an existing parent.
type EnterAnimationFunc func(h Handle, props Props)

// ExitAnimationFunc runs instead of removing a node. It must call remove
// once the animation is done.
type ExitAnimationFunc func(h Handle, remove func(), props Props)

// UpdateAnimationFunc runs after a node's properties or text changed.
type UpdateAnimationFunc func(h Handle, props, previous Props)

// Interceptor wraps an event handler before it is bound.
type Interceptor func(propName string, handler EventHandler, h Handle, props Props) EventHandler

// Transitions implements token based animations, used when enterAnimation
// or exitAnimation hold a string instead of a function.
type Transitions interface {
	Enter(h Handle, props Props, token string)
	Exit(h Handle, props Props, token string, done func())
}

// Options configure how a projection creates and updates output.
type Options struct {
	// Surface is the output the projection writes to. Required.
	Surface Surface

	// Namespace forces the namespace elements are created in.
	Namespace string

	// EventHandlerInterceptor, if set, wraps every handler before binding.
	EventHandlerInterceptor Interceptor

	// StyleApplier applies a single style. Defaults to Surface.SetStyle.
	StyleApplier func(h Handle, name, value string)

	// Transitions serves animation tokens. Requesting a token without
	// Transitions is an error.
	Transitions Transitions

	// Logger receives debug output for every pass.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// withDefaults returns a copy of o with defaults applied.
func (o Options) withDefaults() (*Options, error) {
	if o.Surface == nil {
		return nil, errors.Newf(errors.CategoryRender, "vdom: Options.Surface is required")
	}
	if o.StyleApplier == nil {
		o.StyleApplier = o.Surface.SetStyle
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &o, nil
}

// withNamespace returns o switched to namespace, copying only if needed.
func (o *Options) withNamespace(namespace string) *Options {
	if o.Namespace == namespace {
		return o
	}
	c := *o
	c.Namespace = namespace
	return &c
}
