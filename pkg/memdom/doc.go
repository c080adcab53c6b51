// Package memdom is an in-memory document implementing vdom.Surface.
//
// A Document keeps a node tree under a root element, records every mutation
// as a protocol.Patch, dispatches events to bound handlers and serializes
// subtrees to HTML. It backs the engine's tests, the render command and the
// preview server, which replays the recorded patches in a browser.
//
// Document is not safe for concurrent use; drive it from the goroutine that
// owns the frame loop.
package memdom
