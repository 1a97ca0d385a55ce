package view

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/dshills/vimview/internal/debugger"
	"github.com/dshills/vimview/internal/vim"
)

// Settings are the engine's trigger and display settings. A copy is held
// by the session; the config layer pushes updated copies on change.
type Settings struct {
	// OnStop syncs the editor to the current frame when the debugger
	// stops.
	OnStop Mode

	// OnPrompt syncs a pending location change when the prompt renders.
	OnPrompt Mode

	// UseTabs opens files in tab pages instead of the current window.
	UseTabs bool

	// OnObjfile shows a representative source location when a new object
	// file is loaded.
	OnObjfile bool

	// OnBreakCreate places a sign when a breakpoint is created.
	OnBreakCreate bool

	// OnBreakDelete removes the sign when a breakpoint is deleted.
	OnBreakDelete bool
}

// CursorLocator fetches the editor's cursor position. Satisfied by
// query.Facade.
type CursorLocator interface {
	FileLine(ctx context.Context) (debugger.Location, error)
}

// SessionConfig wires a Session.
type SessionConfig struct {
	// Transport delivers remote commands. Required.
	Transport vim.Transport

	// Resolver supplies the target server name per send. Required.
	Resolver *vim.ServerResolver

	// Debugger exposes frame and breakpoint introspection. Required.
	Debugger debugger.Introspector

	// Cursor fetches the editor cursor position for BreakAtCursor.
	// Optional; without it BreakAtCursor fails.
	Cursor CursorLocator

	// Settings are the initial trigger settings.
	Settings Settings

	// Logf receives debug diagnostics. May be nil.
	Logf func(format string, args ...any)

	// FileExists overrides the on-disk existence check. Tests substitute
	// this; nil means os.Stat.
	FileExists func(path string) bool
}

// Session is the synchronization engine for one debugger session.
//
// It owns all mutable sync state: the location cache, the marker table
// and the pending-change flag. Every entry point takes the session lock,
// so the engine is safe to drive from the bridge loop and the config
// reload goroutine alike, though the debugger serializes its own events.
type Session struct {
	mu sync.Mutex

	transport  vim.Transport
	resolver   *vim.ServerResolver
	dbg        debugger.Introspector
	cursor     CursorLocator
	logf       func(format string, args ...any)
	fileExists func(path string) bool

	settings Settings

	// Activation signal for auto modes, fixed at construction.
	activation bool

	cache   LocationCache
	markers *MarkerTable

	// pending is a stop-cycle location change that was computed but not
	// yet attempted, consumed by OnPrompt.
	pending *debugger.Location

	// signDefined is set after the sign definition reached the server.
	signDefined bool
}

// NewSession creates the engine. The activation signal is captured from
// the resolver now and not re-read later.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		transport:  cfg.Transport,
		resolver:   cfg.Resolver,
		dbg:        cfg.Debugger,
		cursor:     cfg.Cursor,
		logf:       cfg.Logf,
		fileExists: cfg.FileExists,
		settings:   cfg.Settings,
		markers:    NewMarkerTable(),
	}
	if s.fileExists == nil {
		s.fileExists = func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		}
	}
	if cfg.Resolver != nil {
		s.activation = cfg.Resolver.EnvProvided()
	}
	return s
}

// UpdateSettings replaces the engine's settings.
func (s *Session) UpdateSettings(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// SettingsSnapshot returns a copy of the current settings.
func (s *Session) SettingsSnapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// OnStop handles a debugger stop event. Transport failures are swallowed.
func (s *Session) OnStop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.dbg.CurrentFrame()
	if err != nil {
		s.debugf("stop: %v", err)
		return
	}
	if !loc.Valid() {
		return
	}

	if last, ok := s.cache.Last(); ok && last == loc {
		s.pending = nil
		return
	}

	if !s.settings.OnStop.Active(s.activation) {
		pending := loc
		s.pending = &pending
		return
	}

	if err := s.showLocked(ctx, loc, false); err != nil {
		s.debugf("stop: %v", err)
	}
}

// OnPrompt handles a prompt render. It only acts when a stop cycle left a
// location change that was never attempted, so an idle prompt redraw
// costs no remote call.
func (s *Session) OnPrompt(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.OnPrompt.Active(s.activation) {
		return
	}
	if s.pending == nil {
		return
	}

	loc := *s.pending
	if err := s.showLocked(ctx, loc, false); err != nil {
		s.debugf("prompt: %v", err)
	}
}

// OnObjfile handles a new-object-file event. loc is the representative
// source location (the configured global symbol if the debugger resolved
// one, else the object's primary source).
func (s *Session) OnObjfile(ctx context.Context, loc debugger.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.OnObjfile || !loc.Valid() {
		return
	}
	if err := s.showLocked(ctx, loc, false); err != nil {
		s.debugf("objfile: %v", err)
	}
}

// OnBreakpointCreated places a sign for a freshly created breakpoint.
func (s *Session) OnBreakpointCreated(ctx context.Context, bp debugger.Breakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.OnBreakCreate {
		return
	}
	if bp.File == "" || bp.Line <= 0 {
		return
	}

	m := s.markers.Place(bp.Number, bp.File, bp.Line)
	if err := s.placeSignLocked(ctx, m); err != nil {
		s.debugf("breakpoint %d: %v", bp.Number, err)
	}
}

// OnBreakpointDeleted removes the sign for a deleted breakpoint. The
// mapping entry is dropped regardless of transport success; a live server
// missing one removal is the accepted failure mode.
func (s *Session) OnBreakpointDeleted(ctx context.Context, num int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.markers.Remove(num)
	if !ok {
		return
	}
	if !s.settings.OnBreakDelete {
		return
	}

	if err := s.sendExpr(ctx, vim.RemoveSignExpr(m.SignID)); err != nil {
		s.debugf("breakpoint %d: %v", num, err)
	}
}

// SyncMarkers reconciles the marker table against the debugger's current
// breakpoint table, removing stale signs before placing missing ones.
// It returns how many signs were placed and removed.
func (s *Session) SyncMarkers(ctx context.Context) (placed, removed int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bps, err := s.dbg.Breakpoints()
	if err != nil {
		return 0, 0, fmt.Errorf("breakpoint table: %w", err)
	}

	byNum := make(map[int]debugger.Breakpoint, len(bps))
	current := make([]int, 0, len(bps))
	for _, bp := range bps {
		if bp.File == "" || bp.Line <= 0 {
			continue
		}
		byNum[bp.Number] = bp
		current = append(current, bp.Number)
	}

	toAdd, toRemove := s.markers.Diff(current)

	for _, num := range toRemove {
		m, ok := s.markers.Remove(num)
		if !ok {
			continue
		}
		removed++
		if sendErr := s.sendExpr(ctx, vim.RemoveSignExpr(m.SignID)); sendErr != nil {
			s.debugf("sync remove %d: %v", num, sendErr)
		}
	}

	for _, num := range toAdd {
		bp := byNum[num]
		m := s.markers.Place(bp.Number, bp.File, bp.Line)
		placed++
		if sendErr := s.placeSignLocked(ctx, m); sendErr != nil {
			s.debugf("sync place %d: %v", num, sendErr)
		}
	}

	return placed, removed, nil
}

// ShowCurrent shows the debugger's current frame, bypassing the dedup
// cache. Errors surface to the caller; this backs the explicit user
// command.
func (s *Session) ShowCurrent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.dbg.CurrentFrame()
	if err != nil {
		return err
	}
	if !loc.Valid() {
		return ErrNoFile
	}
	return s.showLocked(ctx, loc, true)
}

// ShowLocation shows an explicit location, bypassing the dedup cache.
func (s *Session) ShowLocation(ctx context.Context, loc debugger.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !loc.Valid() {
		return ErrNoFile
	}
	return s.showLocked(ctx, loc, true)
}

// ShowBreakpoint shows breakpoint num's location, bypassing the dedup
// cache and the onstop/onprompt modes.
func (s *Session) ShowBreakpoint(ctx context.Context, num int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bp, err := s.dbg.Breakpoint(num)
	if err != nil {
		return err
	}
	loc := bp.Location()
	if !loc.Valid() {
		return ErrNoFile
	}
	return s.showLocked(ctx, loc, true)
}

// BreakAtCursor asks the debugger to create a breakpoint at the editor's
// cursor position.
func (s *Session) BreakAtCursor(ctx context.Context) (debugger.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == nil {
		return debugger.Location{}, ErrNoCursor
	}
	loc, err := s.cursor.FileLine(ctx)
	if err != nil {
		return debugger.Location{}, err
	}
	if err := s.dbg.CreateBreakpoint(loc); err != nil {
		return debugger.Location{}, err
	}
	return loc, nil
}

// LastShown returns the last location recorded as shown.
func (s *Session) LastShown() (debugger.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Last()
}

// Markers returns the live markers ordered by breakpoint number.
func (s *Session) Markers() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers.Markers()
}

// showLocked builds and sends the show-location command. The cache is
// updated before the send; a failed send stays recorded so a dead server
// is not retried on every event. force bypasses dedup and promotes the
// missing-file case to an error.
func (s *Session) showLocked(ctx context.Context, loc debugger.Location, force bool) error {
	if force {
		s.cache.Force(loc)
	} else if !s.cache.ShouldUpdate(loc) {
		return nil
	}
	s.pending = nil

	if !s.fileExists(loc.File) {
		if force {
			return fmt.Errorf("%w: %s", ErrFileMissing, loc.File)
		}
		s.debugf("skip missing file %s", loc.File)
		return nil
	}

	args := vim.ShowLocationArgs(loc.File, loc.Line, s.settings.UseTabs)
	server, _ := s.resolver.Resolve()
	_, err := s.transport.Send(ctx, server, args)
	return err
}

// placeSignLocked defines the sign on first use, then places it.
func (s *Session) placeSignLocked(ctx context.Context, m Marker) error {
	if !s.signDefined {
		if err := s.sendExpr(ctx, vim.DefineSignExpr()); err != nil {
			return err
		}
		s.signDefined = true
	}
	return s.sendExpr(ctx, vim.PlaceSignExpr(m.SignID, m.File, m.Line))
}

func (s *Session) sendExpr(ctx context.Context, expr string) error {
	server, _ := s.resolver.Resolve()
	_, err := s.transport.Send(ctx, server, []string{"--remote-expr", expr})
	return err
}

func (s *Session) debugf(format string, args ...any) {
	if s.logf != nil {
		s.logf(format, args...)
	}
}
