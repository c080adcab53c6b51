package protocol

import (
	"errors"
	"io"
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FramePatches FrameType = 0x01 // Server → Client patches
	FrameEvent   FrameType = 0x02 // Client → Server events
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FramePatches:
		return "Patches"
	case FrameEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// ErrInvalidFrameType is returned for frames of an unknown type.
var ErrInvalidFrameType = errors.New("protocol: invalid frame type")

// EncodeFrame prefixes payload with its frame type.
func EncodeFrame(ft FrameType, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+1)
	out = append(out, byte(ft))
	return append(out, payload...)
}

// DecodeFrame splits a message into its frame type and payload.
func DecodeFrame(data []byte) (FrameType, []byte, error) {
	if len(data) == 0 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	ft := FrameType(data[0])
	if ft != FramePatches && ft != FrameEvent {
		return 0, nil, ErrInvalidFrameType
	}
	return ft, data[1:], nil
}
