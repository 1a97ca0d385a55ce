package bridge

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/vimview/internal/config"
	"github.com/dshills/vimview/internal/debugger"
	"github.com/dshills/vimview/internal/query"
	"github.com/dshills/vimview/internal/view"
)

// Logger is the diagnostic surface the bridge needs. Satisfied by
// app.Logger.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Config wires a Bridge.
type Config struct {
	// Session is the sync engine. Required.
	Session *view.Session

	// Queries is the cursor query facade. Required.
	Queries *query.Facade

	// Settings is the settings registry. Required.
	Settings *config.Registry

	// State is the wire-backed debugger state. Required.
	State *State

	// Log receives diagnostics. May be nil.
	Log Logger
}

// Bridge runs the request/reply loop.
type Bridge struct {
	session  *view.Session
	queries  *query.Facade
	settings *config.Registry
	state    *State
	log      Logger
}

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

// New creates a bridge.
func New(cfg Config) *Bridge {
	return &Bridge{
		session:  cfg.Session,
		queries:  cfg.Queries,
		settings: cfg.Settings,
		state:    cfg.State,
		log:      cfg.Log,
	}
}

// Run reads requests from r until EOF or context cancellation, writing
// one reply line per request to w.
func (b *Bridge) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)

	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		reply := b.Handle(ctx, line)
		if _, err := out.Write(reply); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return ctx.Err()
}

// Handle processes one request line and returns the reply.
func (b *Bridge) Handle(ctx context.Context, line []byte) []byte {
	if !gjson.ValidBytes(line) {
		return errReply("", "malformed request")
	}

	req := gjson.ParseBytes(line)
	op := req.Get("op").String()
	b.debugf("request: %s", op)

	switch op {
	case "stop":
		return b.handleStop(ctx, req)
	case "prompt":
		b.session.OnPrompt(ctx)
		return okReply(op)
	case "objfile":
		return b.handleObjfile(ctx, req)
	case "break-created":
		return b.handleBreakCreated(ctx, req)
	case "break-deleted":
		return b.handleBreakDeleted(ctx, req)
	case "sync-breaks":
		return b.handleSyncBreaks(ctx, req)
	case "show":
		return b.handleShow(ctx, req)
	case "show-break":
		return b.handleShowBreak(ctx, req)
	case "break-at-cursor":
		return b.handleBreakAtCursor(ctx)
	case "query":
		return b.handleQuery(ctx, req)
	case "set":
		return b.handleSet(req)
	case "settings":
		return b.handleSettings()
	case "markers":
		return b.handleMarkers()
	case "":
		return errReply(op, "missing op")
	default:
		return errReply(op, fmt.Sprintf("unknown op %q", op))
	}
}

func (b *Bridge) handleStop(ctx context.Context, req gjson.Result) []byte {
	loc := locationFrom(req, "file", "line")
	if loc.Valid() {
		b.state.SetFrame(loc)
	} else {
		b.state.ClearFrame()
	}
	b.session.OnStop(ctx)
	return okReply("stop")
}

func (b *Bridge) handleObjfile(ctx context.Context, req gjson.Result) []byte {
	// Prefer the location of the resolved global symbol, if the shim
	// supplied one, over the object's primary source.
	loc := locationFrom(req, "symbol-file", "symbol-line")
	if !loc.Valid() {
		loc = locationFrom(req, "file", "line")
	}
	b.session.OnObjfile(ctx, loc)

	// The shim resolves this symbol's location for the next object file.
	reply := okReply("objfile")
	reply, _ = sjson.SetBytes(reply, "symbol", b.settings.String(config.SettingGlobalSymbol))
	return reply
}

func (b *Bridge) handleBreakCreated(ctx context.Context, req gjson.Result) []byte {
	bp := breakpointFrom(req)
	if bp.Number <= 0 {
		return errReply("break-created", "missing breakpoint number")
	}
	b.state.UpsertBreakpoint(bp)
	b.session.OnBreakpointCreated(ctx, bp)
	return okReply("break-created")
}

func (b *Bridge) handleBreakDeleted(ctx context.Context, req gjson.Result) []byte {
	num := int(req.Get("num").Int())
	if num <= 0 {
		return errReply("break-deleted", "missing breakpoint number")
	}
	b.state.RemoveBreakpoint(num)
	b.session.OnBreakpointDeleted(ctx, num)
	return okReply("break-deleted")
}

func (b *Bridge) handleSyncBreaks(ctx context.Context, req gjson.Result) []byte {
	var bps []debugger.Breakpoint
	req.Get("breakpoints").ForEach(func(_, item gjson.Result) bool {
		bps = append(bps, breakpointFrom(item))
		return true
	})
	b.state.ReplaceBreakpoints(bps)

	placed, removed, err := b.session.SyncMarkers(ctx)
	if err != nil {
		return errReply("sync-breaks", err.Error())
	}

	reply := okReply("sync-breaks")
	reply, _ = sjson.SetBytes(reply, "placed", placed)
	reply, _ = sjson.SetBytes(reply, "removed", removed)
	return reply
}

func (b *Bridge) handleShow(ctx context.Context, req gjson.Result) []byte {
	loc := locationFrom(req, "file", "line")

	var err error
	if loc.Valid() {
		err = b.session.ShowLocation(ctx, loc)
	} else {
		err = b.session.ShowCurrent(ctx)
	}
	if err != nil {
		return errReply("show", err.Error())
	}
	return okReply("show")
}

func (b *Bridge) handleShowBreak(ctx context.Context, req gjson.Result) []byte {
	num := int(req.Get("num").Int())
	if num <= 0 {
		return errReply("show-break", "missing breakpoint number")
	}
	if err := b.session.ShowBreakpoint(ctx, num); err != nil {
		return errReply("show-break", err.Error())
	}
	return okReply("show-break")
}

func (b *Bridge) handleBreakAtCursor(ctx context.Context) []byte {
	if _, err := b.session.BreakAtCursor(ctx); err != nil {
		return errReply("break-at-cursor", err.Error())
	}

	loc, ok := b.state.TakePendingBreak()
	if !ok {
		return errReply("break-at-cursor", "no breakpoint directive recorded")
	}

	// The shim creates the breakpoint at the returned position.
	reply := okReply("break-at-cursor")
	reply, _ = sjson.SetBytes(reply, "file", loc.File)
	reply, _ = sjson.SetBytes(reply, "line", loc.Line)
	reply, _ = sjson.SetBytes(reply, "spec", loc.String())
	return reply
}

func (b *Bridge) handleQuery(ctx context.Context, req gjson.Result) []byte {
	kind := req.Get("kind").String()

	var value any
	var err error
	switch kind {
	case "word":
		value, err = b.queries.Word(ctx)
	case "expr":
		value, err = b.queries.Expr(ctx)
	case "file":
		value, err = b.queries.File(ctx)
	case "line":
		value, err = b.queries.Line(ctx)
	case "fileline":
		var loc debugger.Location
		loc, err = b.queries.FileLine(ctx)
		value = loc.String()
	default:
		return errReply("query", fmt.Sprintf("unknown query kind %q", kind))
	}
	if err != nil {
		return errReply("query", err.Error())
	}

	reply := okReply("query")
	reply, _ = sjson.SetBytes(reply, "kind", kind)
	reply, _ = sjson.SetBytes(reply, "value", value)
	return reply
}

func (b *Bridge) handleSet(req gjson.Result) []byte {
	name := req.Get("name").String()
	value := req.Get("value").String()

	if err := b.settings.Set(name, value); err != nil {
		return errReply("set", err.Error())
	}

	show, err := b.settings.Describe(name)
	if err != nil {
		return errReply("set", err.Error())
	}

	reply := okReply("set")
	reply, _ = sjson.SetBytes(reply, "show", show)
	return reply
}

func (b *Bridge) handleSettings() []byte {
	reply := okReply("settings")
	for name, value := range b.settings.Snapshot() {
		reply, _ = sjson.SetBytes(reply, "settings."+name, value)
	}
	return reply
}

func (b *Bridge) handleMarkers() []byte {
	reply := okReply("markers")
	reply, _ = sjson.SetRawBytes(reply, "markers", []byte("[]"))
	for i, m := range b.session.Markers() {
		prefix := fmt.Sprintf("markers.%d.", i)
		reply, _ = sjson.SetBytes(reply, prefix+"breakpoint", m.Breakpoint)
		reply, _ = sjson.SetBytes(reply, prefix+"sign", m.SignID)
		reply, _ = sjson.SetBytes(reply, prefix+"file", m.File)
		reply, _ = sjson.SetBytes(reply, prefix+"line", m.Line)
	}
	return reply
}

// locationFrom reads a location from fileKey and lineKey of a request.
func locationFrom(req gjson.Result, fileKey, lineKey string) debugger.Location {
	return debugger.Location{
		File: req.Get(fileKey).String(),
		Line: int(req.Get(lineKey).Int()),
	}
}

// breakpointFrom reads a breakpoint table entry. Enabled defaults true
// when absent.
func breakpointFrom(item gjson.Result) debugger.Breakpoint {
	enabled := true
	if e := item.Get("enabled"); e.Exists() {
		enabled = e.Bool()
	}
	return debugger.Breakpoint{
		Number:  int(item.Get("num").Int()),
		File:    item.Get("file").String(),
		Line:    int(item.Get("line").Int()),
		Enabled: enabled,
	}
}

func okReply(op string) []byte {
	reply := []byte(`{}`)
	reply, _ = sjson.SetBytes(reply, "ok", true)
	if op != "" {
		reply, _ = sjson.SetBytes(reply, "op", op)
	}
	return reply
}

func errReply(op, msg string) []byte {
	reply := []byte(`{}`)
	reply, _ = sjson.SetBytes(reply, "ok", false)
	if op != "" {
		reply, _ = sjson.SetBytes(reply, "op", op)
	}
	reply, _ = sjson.SetBytes(reply, "error", msg)
	return reply
}

func (b *Bridge) debugf(format string, args ...any) {
	if b.log != nil {
		b.log.Debugf(format, args...)
	}
}
