package vim

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// SignName is the sign definition used for breakpoint markers. It is
// defined once per server with DefineSignExpr before the first placement.
const SignName = "VimViewBreak"

// QueryKind selects a cursor query expression.
type QueryKind int

const (
	// QueryWord is the word under the cursor (<cword>).
	QueryWord QueryKind = iota
	// QueryExpression is the WORD under the cursor (<cWORD>), typically a
	// full expression like "p->next".
	QueryExpression
	// QueryFile is the absolute path of the current buffer.
	QueryFile
	// QueryLine is the cursor's line number.
	QueryLine
	// QueryFileLine is the file and line together, JSON-encoded.
	QueryFileLine
)

// String returns the query kind name.
func (k QueryKind) String() string {
	switch k {
	case QueryWord:
		return "word"
	case QueryExpression:
		return "expr"
	case QueryFile:
		return "file"
	case QueryLine:
		return "line"
	case QueryFileLine:
		return "fileline"
	default:
		return "unknown"
	}
}

// ShowLocationArgs builds the client argv fragment that makes the server
// show file at line. With useTabs the file opens in a tab page, otherwise
// in the current window. A zero line omits cursor positioning.
//
// The path travels as its own argv element, so no escaping is needed and
// arbitrary characters survive intact. An empty file yields arguments the
// server ignores.
func ShowLocationArgs(file string, line int, useTabs bool) []string {
	open := "--remote"
	if useTabs {
		open = "--remote-tab"
	}

	args := []string{open}
	if line > 0 {
		args = append(args, "+"+strconv.Itoa(line))
	}
	return append(args, absPath(file))
}

// DefineSignExpr builds the remote expression that defines the breakpoint
// sign. Redefining an existing sign is harmless.
func DefineSignExpr() string {
	return execExpr(fmt.Sprintf("sign define %s text=>> texthl=Debug", SignName))
}

// PlaceSignExpr builds the remote expression placing sign id at file:line.
func PlaceSignExpr(id int, file string, line int) string {
	return execExpr(fmt.Sprintf("sign place %d line=%d name=%s file=%s",
		id, line, SignName, absPath(file)))
}

// RemoveSignExpr builds the remote expression removing sign id, wherever
// it was placed.
func RemoveSignExpr(id int) string {
	return execExpr(fmt.Sprintf("sign unplace %d", id))
}

// QueryExpr builds the read-only remote expression for a cursor query.
// QueryFileLine returns a json_encode() expression so the reply can be
// parsed without guessing at separators inside the path.
func QueryExpr(kind QueryKind) string {
	switch kind {
	case QueryWord:
		return `expand("<cword>")`
	case QueryExpression:
		return `expand("<cWORD>")`
	case QueryFile:
		return `expand("%:p")`
	case QueryLine:
		return `line(".")`
	case QueryFileLine:
		return `json_encode([expand("%:p"), line(".")])`
	default:
		return `""`
	}
}

// execExpr wraps an ex command in execute() so it can ride --remote-expr.
// The command text is quoted losslessly.
func execExpr(command string) string {
	return "execute(" + Quote(command) + ")"
}

// absPath absolutizes file, leaving it unchanged when empty or when the
// working directory is unavailable.
func absPath(file string) string {
	if file == "" {
		return file
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	return abs
}
