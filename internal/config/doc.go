// Package config holds the vimview settings registry.
//
// Settings are typed (string, boolean, tri-state), validated at set-time,
// and canonicalized to their string form ("on", "off", "auto"). Invalid
// values are rejected with no state change. Components subscribe to the
// registry and receive a callback per changed setting, which is how the
// engine, transport and resolver pick up runtime changes.
//
// Defaults can be overlaid from a YAML file, and a file watcher reloads
// it when it changes on disk. Setting names match the debugger parameter
// surface; a leading "vimview-" prefix is accepted and stripped.
package config
