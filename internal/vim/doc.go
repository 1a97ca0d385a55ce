// Package vim constructs and delivers remote commands for a Vim server.
//
// Vim's client-server feature lets a running instance be driven from the
// outside: `vim --servername NAME --remote +42 file.c` opens a file at a
// line, and `vim --servername NAME --remote-expr 'line(".")'` evaluates an
// expression and prints the result. This package covers three concerns:
//
//   - Server resolution: which server name to target, taken from an
//     explicit setting, the VIMSERVER environment variable captured at
//     startup, or the default "gdb". Names compare case-insensitively,
//     matching Vim's own server registry.
//
//   - Command construction: pure functions that build the argv fragments
//     and remote expressions for opening a file at a line, placing and
//     removing signs, and querying cursor state. Paths are absolutized;
//     text embedded in expressions is escaped losslessly.
//
//   - Transport: ExecTransport runs the vim binary as a short-lived client
//     process with a bounded deadline. A Transport failure means the send
//     was dropped; it never implies anything about the server's state.
//
// Command construction never fails. An empty file path produces a
// well-formed command that the server treats as a no-op; callers that care
// check the path before building.
package vim
