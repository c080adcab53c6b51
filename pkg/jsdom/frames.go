//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/vango-dev/widgetkit/pkg/frame"
)

// Frames is a frame.Source backed by window.requestAnimationFrame.
type Frames struct {
	window  js.Value
	nextID  frame.ID
	pending map[frame.ID]pendingFrame
}

type pendingFrame struct {
	handle js.Value
	fn     js.Func
}

var _ frame.Source = (*Frames)(nil)

// AnimationFrames returns a frame source for the current window.
func AnimationFrames() *Frames {
	return &Frames{
		window:  js.Global(),
		pending: make(map[frame.ID]pendingFrame),
	}
}

// RequestFrame runs fn at the next animation frame.
func (f *Frames) RequestFrame(fn func()) frame.ID {
	f.nextID++
	id := f.nextID
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		delete(f.pending, id)
		cb.Release()
		fn()
		return nil
	})
	handle := f.window.Call("requestAnimationFrame", cb)
	f.pending[id] = pendingFrame{handle: handle, fn: cb}
	return id
}

// CancelFrame cancels a frame that has not fired.
func (f *Frames) CancelFrame(id frame.ID) {
	p, ok := f.pending[id]
	if !ok {
		return
	}
	delete(f.pending, id)
	f.window.Call("cancelAnimationFrame", p.handle)
	p.fn.Release()
}
