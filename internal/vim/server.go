package vim

import (
	"os"
	"strings"
	"sync"
)

// DefaultServerName is the server targeted when nothing else is configured.
const DefaultServerName = "gdb"

// ServerEnvVar is the environment variable supplying the default server
// name. Its presence at startup is also the activation signal for settings
// in auto mode.
const ServerEnvVar = "VIMSERVER"

// ServerSource identifies where a resolved server name came from.
type ServerSource int

const (
	// SourceDefault means the built-in default was used.
	SourceDefault ServerSource = iota
	// SourceEnvironment means the name came from VIMSERVER at startup.
	SourceEnvironment
	// SourceSetting means an explicit setting override was used.
	SourceSetting
)

// String returns the source name.
func (s ServerSource) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceEnvironment:
		return "environment"
	case SourceSetting:
		return "setting"
	default:
		return "unknown"
	}
}

// ServerResolver determines the target server name for each send.
//
// Precedence: explicit setting, then the environment value captured when
// the resolver was created, then DefaultServerName. Resolution always
// succeeds.
type ServerResolver struct {
	mu sync.RWMutex

	// Explicit override from the server setting. Empty means unset.
	explicit string

	// Environment value captured once at construction.
	envName string
	envSet  bool
}

// NewServerResolver creates a resolver, capturing VIMSERVER immediately.
// Later changes to the environment are not observed.
func NewServerResolver() *ServerResolver {
	name, ok := os.LookupEnv(ServerEnvVar)
	return &ServerResolver{envName: name, envSet: ok && name != ""}
}

// SetExplicit sets or clears (with "") the explicit server override.
func (r *ServerResolver) SetExplicit(name string) {
	r.mu.Lock()
	r.explicit = name
	r.mu.Unlock()
}

// Resolve returns the server name to target and where it came from.
func (r *ServerResolver) Resolve() (string, ServerSource) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.explicit != "" {
		return r.explicit, SourceSetting
	}
	if r.envSet {
		return r.envName, SourceEnvironment
	}
	return DefaultServerName, SourceDefault
}

// EnvProvided reports whether VIMSERVER was set at startup. This is the
// activation signal tested by auto-mode settings.
func (r *ServerResolver) EnvProvided() bool {
	return r.envSet
}

// EqualNames reports whether two server names identify the same server.
// Vim registers server names case-insensitively.
func EqualNames(a, b string) bool {
	return strings.EqualFold(a, b)
}
