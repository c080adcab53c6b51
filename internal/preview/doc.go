// Package preview serves a live view of an in-memory document.
//
// The server renders the document's current HTML on GET /, then streams
// every mutation to connected browsers as binary protocol frames over a
// websocket at /ws. A new connection first receives a reset frame that
// rebuilds the whole document; afterwards it receives the patches recorded
// by each frame. Events reported by the browser are posted to the frame
// loop and dispatched to the document there.
//
// The document is only touched on the loop goroutine. HTTP handlers reach
// it through Poster.Post.
package preview
