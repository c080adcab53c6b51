package vdom

// Namespaces recognized by the engine.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// Handle is an opaque output node owned by a Surface.
type Handle any

// Surface is the mutable output the engine patches. Implementations must
// return an untyped nil Handle when a node has no parent or child.
//
// InsertBefore with a nil ref appends child to parent. Inserting a child
// that already has a parent moves it.
type Surface interface {
	CreateElement(namespace, tag string) Handle
	CreateText(text string) Handle
	InsertBefore(parent, child, ref Handle)
	RemoveChild(parent, child Handle)
	ReplaceChild(parent, newChild, oldChild Handle)
	Parent(h Handle) Handle
	FirstChild(h Handle) Handle

	// SetText replaces the whole content of h with a single text node.
	SetText(h Handle, text string)

	AddClass(h Handle, name string)
	RemoveClass(h Handle, name string)
	SetAttribute(h Handle, namespace, name, value string)
	Property(h Handle, name string) any
	SetProperty(h Handle, name string, value any)
	SetStyle(h Handle, name, value string)

	// SetHandler binds fn to the handler property name ("onclick").
	SetHandler(h Handle, name string, fn EventHandler)
}

// Event is passed to event handlers.
type Event struct {
	// Type is the event type without the "on" prefix ("click").
	Type string

	// Target is the output node the handler was bound to.
	Target Handle

	// Value is the live value of the target, if the surface has one.
	Value string

	// Bind is the "bind" property of the node that declared the handler.
	Bind any

	// Native is the surface specific event object, if any.
	Native any
}

// EventHandler handles an event dispatched by a Surface.
type EventHandler func(evt *Event)
