package vdom

import "github.com/vango-dev/widgetkit/internal/errors"

// Errors returned by the engine. Compare with errors.Is; returned errors
// carry a detail naming the offending node.
var (
	ErrRootSelectorChanged = errors.New("W101")
	ErrClassChanged        = errors.New("W102")
	ErrStyleNotString      = errors.New("W103")
	ErrMissingTransitions  = errors.New("W104")
	ErrHandlerChanged      = errors.New("W105")
	ErrAmbiguousAdded      = errors.New("W106")
	ErrAmbiguousRemoved    = errors.New("W107")
	ErrClassName           = errors.New("W109")
	ErrNodeReused          = errors.New("W110")
	ErrInvalidHook         = errors.New("W112")
)
