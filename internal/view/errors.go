package view

import "errors"

// Engine errors.
var (
	// ErrInvalidMode indicates a value that is not "on", "off" or "auto".
	ErrInvalidMode = errors.New("view: invalid mode value")

	// ErrNoFile indicates a show request without a usable file path.
	ErrNoFile = errors.New("view: no file to show")

	// ErrFileMissing indicates the file to show does not exist on disk.
	ErrFileMissing = errors.New("view: file does not exist")

	// ErrNoCursor indicates the session was built without cursor queries.
	ErrNoCursor = errors.New("view: cursor queries unavailable")
)
