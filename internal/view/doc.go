// Package view implements the debugger-to-Vim synchronization engine.
//
// The engine reacts to debugger lifecycle events (stop, prompt, object
// file load, breakpoint create and delete) and to explicit user commands,
// and decides on each one whether to send a remote command to the Vim
// server. Two independently-stateful processes are kept in step over a
// fire-and-forget channel, so the engine carries just enough state to
// avoid redundant or conflicting sends:
//
//   - LocationCache remembers the last location shown and suppresses
//     no-op updates. The cache updates before the send is attempted and a
//     failed send does not roll it back; retrying the same dead server on
//     every subsequent event would be worse than occasionally suppressing
//     a line the user never saw.
//
//   - MarkerTable owns the mapping from debugger breakpoint numbers to
//     Vim sign ids. Ids come from a session-scoped monotonic counter and
//     are never reused while an entry is live, so a server holding stale
//     signs cannot collide with a fresh placement.
//
//   - Mode resolves the tri-state on/off/auto settings against the
//     activation signal (VIMSERVER present at startup).
//
// Session ties these together and is the only component with side effects
// besides the transport. Transport failures during event-driven syncs are
// logged and swallowed; failures during user commands are returned.
package view
