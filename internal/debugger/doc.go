// Package debugger defines the narrow contracts the sync engine consumes
// from the debugger side of the bridge.
//
// The debugger runtime itself (frame and breakpoint introspection, event
// hooks, command registration) lives outside this module, behind a thin
// shim that forwards lifecycle events over the bridge protocol. This
// package only fixes the shapes the engine needs: the current frame, the
// breakpoint table, and breakpoint creation. The bridge package provides
// the wire-backed implementation; tests substitute fakes.
package debugger
