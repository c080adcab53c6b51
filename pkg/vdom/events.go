package vdom

// event creates a handler Attr. The name is prefixed with "on"
// (e.g., "click" becomes "onclick").
func event(name string, handler EventHandler) Attr {
	return Attr{Key: "on" + name, Value: handler}
}

// On binds handler to an arbitrary event type.
func On(eventType string, handler EventHandler) Attr { return event(eventType, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler EventHandler) Attr { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler EventHandler) Attr { return event("dblclick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler EventHandler) Attr { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler EventHandler) Attr { return event("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler EventHandler) Attr { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler EventHandler) Attr { return event("keyup", handler) }

// Form events

// OnInput handles input events. The live value is snapshotted before the
// handler runs so a pending render does not overwrite the edit.
func OnInput(handler EventHandler) Attr { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler EventHandler) Attr { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler EventHandler) Attr { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler EventHandler) Attr { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler EventHandler) Attr { return event("blur", handler) }
