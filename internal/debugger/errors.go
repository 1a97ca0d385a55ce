package debugger

import "errors"

// Introspection errors.
var (
	// ErrNoFrame indicates no frame is selected or the selected frame has
	// no usable source information.
	ErrNoFrame = errors.New("debugger: no source for selected frame")

	// ErrNoBreakpoint indicates the referenced breakpoint number does not
	// exist in the debugger's table.
	ErrNoBreakpoint = errors.New("debugger: no such breakpoint")
)
