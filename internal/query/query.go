// Package query fetches cursor state from the Vim server on demand.
//
// Each query evaluates a read-only remote expression and parses the
// textual reply strictly: whitespace is trimmed, line numbers must parse
// as positive integers, and the combined file:line query rides a
// json_encode() reply so separators inside the path cannot confuse it.
// A malformed reply fails the query, never the session.
package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/vimview/internal/debugger"
	"github.com/dshills/vimview/internal/vim"
)

// ErrMalformedReply indicates the server's reply could not be parsed into
// the expected shape.
var ErrMalformedReply = errors.New("query: malformed reply")

// Facade issues cursor queries against the resolved server.
type Facade struct {
	transport vim.Transport
	resolver  *vim.ServerResolver
}

// New creates a query facade.
func New(transport vim.Transport, resolver *vim.ServerResolver) *Facade {
	return &Facade{transport: transport, resolver: resolver}
}

// Word returns the word under the cursor.
func (f *Facade) Word(ctx context.Context) (string, error) {
	return f.evalString(ctx, vim.QueryWord)
}

// Expr returns the WORD under the cursor, typically a full expression.
func (f *Facade) Expr(ctx context.Context) (string, error) {
	return f.evalString(ctx, vim.QueryExpression)
}

// File returns the absolute path of the buffer under the cursor.
func (f *Facade) File(ctx context.Context) (string, error) {
	file, err := f.evalString(ctx, vim.QueryFile)
	if err != nil {
		return "", err
	}
	if file == "" {
		return "", fmt.Errorf("%w: buffer has no file", ErrMalformedReply)
	}
	return file, nil
}

// Line returns the cursor's line number.
func (f *Facade) Line(ctx context.Context) (int, error) {
	reply, err := f.evalString(ctx, vim.QueryLine)
	if err != nil {
		return 0, err
	}
	line, err := strconv.Atoi(reply)
	if err != nil || line <= 0 {
		return 0, fmt.Errorf("%w: line %q", ErrMalformedReply, reply)
	}
	return line, nil
}

// FileLine returns the cursor position as a location. The reply is a
// JSON array of [file, line].
func (f *Facade) FileLine(ctx context.Context) (debugger.Location, error) {
	reply, err := f.eval(ctx, vim.QueryFileLine)
	if err != nil {
		return debugger.Location{}, err
	}

	parsed := gjson.Parse(strings.TrimSpace(reply))
	if !parsed.IsArray() {
		return debugger.Location{}, fmt.Errorf("%w: %q", ErrMalformedReply, reply)
	}
	file := parsed.Get("0").String()
	line := int(parsed.Get("1").Int())
	if file == "" || line <= 0 {
		return debugger.Location{}, fmt.Errorf("%w: %q", ErrMalformedReply, reply)
	}
	return debugger.Location{File: file, Line: line}, nil
}

// evalString evaluates a query and trims the reply.
func (f *Facade) evalString(ctx context.Context, kind vim.QueryKind) (string, error) {
	reply, err := f.eval(ctx, kind)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (f *Facade) eval(ctx context.Context, kind vim.QueryKind) (string, error) {
	server, _ := f.resolver.Resolve()
	reply, err := f.transport.Send(ctx, server, []string{"--remote-expr", vim.QueryExpr(kind)})
	if err != nil {
		return "", fmt.Errorf("query %s: %w", kind, err)
	}
	return reply, nil
}
