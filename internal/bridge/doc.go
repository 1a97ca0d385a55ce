// Package bridge speaks the debugger shim protocol.
//
// The debugger side of vimview is a thin shim (a few lines of GDB Python)
// that forwards lifecycle events and user commands to the bridge process
// as newline-delimited JSON on stdin and reads one JSON reply per request
// from stdout. The bridge decodes each request, drives the sync engine,
// and encodes the reply.
//
// Fire-and-forget events (stop, prompt, objfile, break-created,
// break-deleted) always reply ok, even when the remote send was dropped;
// the failure is logged and the debugger is never interrupted. Requests
// carrying explicit user intent (show, show-break, break-at-cursor,
// query, set) surface their errors in the reply.
//
// State mirrors the debugger-side data the engine introspects: the
// current frame and the breakpoint table, both refreshed from event
// payloads. Breakpoint creation runs the other way; the engine records
// the requested location and the reply carries it back for the shim to
// apply.
package bridge
