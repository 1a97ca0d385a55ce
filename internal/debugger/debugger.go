package debugger

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a source position the editor should point at.
type Location struct {
	// File is the source file path. Absolute once it reaches the
	// transport; may arrive relative from the debugger.
	File string

	// Line is the 1-based line number. Zero means "file only".
	Line int
}

// Valid reports whether the location names a file.
func (l Location) Valid() bool {
	return l.File != ""
}

// String renders the location as file:line, or just the file when no line
// is known.
func (l Location) String() string {
	if l.Line <= 0 {
		return l.File
	}
	return l.File + ":" + strconv.Itoa(l.Line)
}

// ParseLocation splits a "file:line" spec, tolerating a missing line and
// colons inside the path (the last colon wins, as in debugger breakpoint
// locations).
func ParseLocation(spec string) Location {
	if i := strings.LastIndexByte(spec, ':'); i > 0 {
		if line, err := strconv.Atoi(spec[i+1:]); err == nil && line > 0 {
			return Location{File: spec[:i], Line: line}
		}
	}
	return Location{File: spec}
}

// Breakpoint is one entry of the debugger's breakpoint table.
type Breakpoint struct {
	// Number is the debugger-assigned breakpoint number.
	Number int

	// File and Line locate the breakpoint's source position.
	File string
	Line int

	// Enabled mirrors the debugger's enabled flag.
	Enabled bool
}

// Location returns the breakpoint's source position.
func (b Breakpoint) Location() Location {
	return Location{File: b.File, Line: b.Line}
}

// Introspector exposes the debugger state the engine reads on demand.
type Introspector interface {
	// CurrentFrame returns the selected frame's source position.
	// Returns ErrNoFrame when no frame is selected or the frame has no
	// source information.
	CurrentFrame() (Location, error)

	// Breakpoints returns a snapshot of the breakpoint table.
	Breakpoints() ([]Breakpoint, error)

	// Breakpoint returns table entry number num, or ErrNoBreakpoint.
	Breakpoint(num int) (Breakpoint, error)

	// CreateBreakpoint asks the debugger to create a breakpoint at loc.
	CreateBreakpoint(loc Location) error
}

// NoBreakpointError wraps ErrNoBreakpoint with the requested number.
func NoBreakpointError(num int) error {
	return fmt.Errorf("%w: %d", ErrNoBreakpoint, num)
}
