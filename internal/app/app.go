package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/vimview/internal/bridge"
	"github.com/dshills/vimview/internal/config"
	"github.com/dshills/vimview/internal/query"
	"github.com/dshills/vimview/internal/view"
	"github.com/dshills/vimview/internal/vim"
)

// Options configure the application from the command line.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogLevel is the base log level name. The debug setting lowers it
	// to debug at runtime.
	LogLevel string

	// ServerName overrides the server setting.
	ServerName string

	// VimBinary overrides the command setting.
	VimBinary string

	// Watch enables config file live reload.
	Watch bool
}

// App owns the wired-up bridge and its collaborators.
type App struct {
	log       *Logger
	registry  *config.Registry
	resolver  *vim.ServerResolver
	transport *vim.ExecTransport
	session   *view.Session
	bridge    *bridge.Bridge
	watcher   *config.FileWatcher

	// baseLevel is restored when the debug setting turns off.
	baseLevel LogLevel
}

// New builds the application: settings, transport, engine, bridge.
func New(opts Options) (*App, error) {
	baseLevel := ParseLogLevel(opts.LogLevel)
	log := NewLogger(baseLevel, nil)

	registry := config.NewRegistry()

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	if configPath != "" {
		if err := registry.LoadFile(configPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	// Command-line overrides land last.
	if opts.ServerName != "" {
		if err := registry.Set(config.SettingServer, opts.ServerName); err != nil {
			return nil, err
		}
	}
	if opts.VimBinary != "" {
		if err := registry.Set(config.SettingCommand, opts.VimBinary); err != nil {
			return nil, err
		}
	}

	resolver := vim.NewServerResolver()
	resolver.SetExplicit(registry.String(config.SettingServer))

	transport := vim.NewExecTransport(
		vim.WithBinary(registry.String(config.SettingCommand)),
		vim.WithLogf(log.WithComponent("vim").Debugf),
	)

	state := bridge.NewState()
	queries := query.New(transport, resolver)

	session := view.NewSession(view.SessionConfig{
		Transport: transport,
		Resolver:  resolver,
		Debugger:  state,
		Cursor:    queries,
		Settings:  engineSettings(registry),
		Logf:      log.WithComponent("view").Debugf,
	})

	a := &App{
		log:       log,
		registry:  registry,
		resolver:  resolver,
		transport: transport,
		session:   session,
		baseLevel: baseLevel,
	}

	if registry.Bool(config.SettingDebug) {
		log.SetLevel(LogLevelDebug)
	}

	registry.Subscribe(a.onSettingChange)

	a.bridge = bridge.New(bridge.Config{
		Session:  session,
		Queries:  queries,
		Settings: registry,
		State:    state,
		Log:      log.WithComponent("bridge"),
	})

	if opts.Watch && configPath != "" {
		watcher, err := config.WatchFile(configPath, registry, log.WithComponent("config").Debugf)
		if err != nil {
			log.Warnf("config watch disabled: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	return a, nil
}

// Run drives the bridge loop over stdin/stdout until EOF.
func (a *App) Run(ctx context.Context) error {
	server, source := a.resolver.Resolve()
	a.log.Infof("targeting Vim server %q (%s)", server, source)
	return a.bridge.Run(ctx, os.Stdin, os.Stdout)
}

// Shutdown releases resources. Safe to call more than once.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

// onSettingChange routes applied setting changes to their consumers.
func (a *App) onSettingChange(change config.Change) {
	switch change.Name {
	case config.SettingServer:
		a.resolver.SetExplicit(change.New)
	case config.SettingCommand:
		a.transport.SetBinary(change.New)
	case config.SettingDebug:
		if change.New == "on" {
			a.log.SetLevel(LogLevelDebug)
		} else {
			a.log.SetLevel(a.baseLevel)
		}
	default:
		a.session.UpdateSettings(engineSettings(a.registry))
	}
	a.log.Debugf("setting %s: %q -> %q", change.Name, change.Old, change.New)
}

// engineSettings projects the registry onto the engine's settings.
// Registry validation guarantees the mode values parse.
func engineSettings(registry *config.Registry) view.Settings {
	onStop, _ := view.ParseMode(registry.String(config.SettingOnStop))
	onPrompt, _ := view.ParseMode(registry.String(config.SettingOnPrompt))

	return view.Settings{
		OnStop:        onStop,
		OnPrompt:      onPrompt,
		UseTabs:       registry.Bool(config.SettingTabs),
		OnObjfile:     registry.Bool(config.SettingNewObjfile),
		OnBreakCreate: registry.Bool(config.SettingNewBreakpoint),
		OnBreakDelete: registry.Bool(config.SettingDeleteBreakpoint),
	}
}

// DefaultConfigPath returns the per-user config file location, or "" when
// the user config directory cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vimview", "config.yaml")
}
