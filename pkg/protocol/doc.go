// Package protocol implements the binary wire format the preview server uses
// to mirror an in-memory document into a browser.
//
// Messages travel as WebSocket binary messages. Each message is one frame:
//
//	[Type: 1 byte][Payload]
//
// # Frame Types
//
//   - FramePatches (0x01): Server → Client mutation batches
//   - FrameEvent (0x02): Client → Server user interactions
//
// # Encoding
//
//   - Varint: Compact encoding for node IDs and counts (protobuf-style)
//   - ZigZag: Signed integers encoded as unsigned varints
//   - Length-prefixed: Strings prefixed with varint length
//
// # Patches
//
// A patches payload carries a sequence number, a reset flag and a list of
// mutations in the order they were applied to the document. Node IDs are
// assigned by the document; ID 0 means "no node" and ID 1 is the document
// root, which the client maps to its mount point. A reset frame tells the
// client to drop everything it mirrored before applying the patches; the
// server sends one as the initial snapshot of every connection.
//
// Example SetText patch encoding:
//
//	[Op: 0x06][ID: varint][Ref: varint][Value: len-prefixed]
package protocol
