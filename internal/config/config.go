package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Kind is a setting's value type.
type Kind int

const (
	// KindString accepts any string.
	KindString Kind = iota
	// KindBool accepts on/off (also true/false, 1/0), stored as on/off.
	KindBool
	// KindTriState accepts on/off/auto, stored canonically.
	KindTriState
)

// Setting names.
const (
	SettingServer           = "server"
	SettingCommand          = "command"
	SettingOnStop           = "onstop"
	SettingOnPrompt         = "onprompt"
	SettingTabs             = "tabs"
	SettingNewObjfile       = "new-objectfile"
	SettingNewBreakpoint    = "new-breakpoint"
	SettingDeleteBreakpoint = "delete-breakpoint"
	SettingGlobalSymbol     = "global-symbol"
	SettingDebug            = "debug"
)

// namePrefix is accepted and stripped on lookup, so "vimview-onstop" and
// "onstop" name the same setting.
const namePrefix = "vimview-"

// Setting defines one registry entry.
type Setting struct {
	// Name is the canonical setting name.
	Name string

	// Kind is the value type.
	Kind Kind

	// Default is the initial value in canonical string form.
	Default string

	// Show is the human-readable summary format; %s receives the value.
	Show string
}

// Change describes one applied setting change.
type Change struct {
	// Name is the canonical setting name.
	Name string

	// Old and New are canonical values.
	Old string
	New string
}

// Observer receives applied changes.
type Observer func(Change)

// Registry stores the settings and notifies observers of changes.
type Registry struct {
	mu        sync.RWMutex
	defs      map[string]Setting
	values    map[string]string
	observers []Observer
}

// NewRegistry creates a registry populated with the vimview settings at
// their defaults.
func NewRegistry() *Registry {
	r := &Registry{
		defs:   make(map[string]Setting),
		values: make(map[string]string),
	}
	for _, def := range defaults() {
		r.defs[def.Name] = def
		r.values[def.Name] = def.Default
	}
	return r
}

func defaults() []Setting {
	return []Setting{
		{Name: SettingServer, Kind: KindString, Default: "", Show: "Vim server name: %q"},
		{Name: SettingCommand, Kind: KindString, Default: "vim", Show: "Vim executable name: %q"},
		{Name: SettingOnStop, Kind: KindTriState, Default: "auto", Show: "Vim follows frame on stop: %s"},
		{Name: SettingOnPrompt, Kind: KindTriState, Default: "auto", Show: "Vim follows frame on prompt: %s"},
		{Name: SettingTabs, Kind: KindBool, Default: "off", Show: "Open files in tabs: %s"},
		{Name: SettingNewObjfile, Kind: KindBool, Default: "off", Show: "Vim shows new object files: %s"},
		{Name: SettingNewBreakpoint, Kind: KindBool, Default: "off", Show: "Vim marks new breakpoints: %s"},
		{Name: SettingDeleteBreakpoint, Kind: KindBool, Default: "off", Show: "Vim unmarks deleted breakpoints: %s"},
		{Name: SettingGlobalSymbol, Kind: KindString, Default: "main", Show: "Representative symbol for object files: %q"},
		{Name: SettingDebug, Kind: KindBool, Default: "off", Show: "Debug output: %s"},
	}
}

// canonicalName strips the optional vimview- prefix.
func canonicalName(name string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), namePrefix)
}

// canonicalValue validates and canonicalizes a value for a kind.
func canonicalValue(kind Kind, value string) (string, error) {
	v := strings.TrimSpace(value)
	switch kind {
	case KindString:
		return v, nil
	case KindBool:
		switch strings.ToLower(v) {
		case "on", "true", "1":
			return "on", nil
		case "off", "false", "0":
			return "off", nil
		}
		return "", fmt.Errorf("%w: %q (want on or off)", ErrInvalidValue, value)
	case KindTriState:
		switch strings.ToLower(v) {
		case "on", "true", "1":
			return "on", nil
		case "off", "false", "0":
			return "off", nil
		case "auto":
			return "auto", nil
		}
		return "", fmt.Errorf("%w: %q (want on, off or auto)", ErrInvalidValue, value)
	default:
		return "", fmt.Errorf("%w: unknown kind", ErrInvalidValue)
	}
}

// Subscribe registers an observer for applied changes.
func (r *Registry) Subscribe(obs Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, obs)
	r.mu.Unlock()
}

// Set validates and applies a value. Observers run only when the stored
// value actually changed.
func (r *Registry) Set(name, value string) error {
	key := canonicalName(name)

	r.mu.Lock()
	def, ok := r.defs[key]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}

	canon, err := canonicalValue(def.Kind, value)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("%s: %w", key, err)
	}

	old := r.values[key]
	if old == canon {
		r.mu.Unlock()
		return nil
	}
	r.values[key] = canon
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	change := Change{Name: key, Old: old, New: canon}
	for _, obs := range observers {
		obs(change)
	}
	return nil
}

// Get returns a setting's canonical value.
func (r *Registry) Get(name string) (string, error) {
	key := canonicalName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.defs[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return r.values[key], nil
}

// Bool returns a boolean setting's value. Unknown names report false.
func (r *Registry) Bool(name string) bool {
	v, err := r.Get(name)
	return err == nil && v == "on"
}

// String returns a string setting's value, or "" for unknown names.
func (r *Registry) String(name string) string {
	v, err := r.Get(name)
	if err != nil {
		return ""
	}
	return v
}

// Describe returns the human-readable summary for a setting, the form
// shown in reply to a "show" request.
func (r *Registry) Describe(name string) (string, error) {
	key := canonicalName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return fmt.Sprintf(def.Show, r.values[key]), nil
}

// Names returns all setting names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all current values keyed by canonical name.
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.values))
	for name, value := range r.values {
		out[name] = value
	}
	return out
}
