// Package errors provides structured, coded errors for widgetkit.
//
// Every contract violation the rendering engine can detect has a registered
// code (e.g. "W102") carrying a short message, a longer explanation and a
// hint on how to fix the calling code. Errors compare by code, so callers
// use the standard library:
//
//	if errors.Is(err, vdom.ErrClassChanged) {
//	    ...
//	}
//
// # Categories
//
//   - render: violations detected while creating or patching output nodes
//   - config: invalid configuration files or values
//   - cli: command line usage and publishing failures
//
// # Usage
//
//	err := errors.New("W102").
//	    WithDetailf("div.card changed class from %q to %q", "a", "b")
//
//	fmt.Fprintln(os.Stderr, err.Format())
//	// Output:
//	// ERROR W102: "class" property may not be updated
//	//
//	//   div.card changed class from "a" to "b"
//	//
//	//   Hint: Use the "classes" property for conditional css classes.
package errors
