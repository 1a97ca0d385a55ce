package vim

import "errors"

// Transport errors.
var (
	// ErrNoBinary indicates the vim executable could not be found.
	ErrNoBinary = errors.New("vim: executable not found")

	// ErrRemoteFailed indicates the remote command was rejected or the
	// client process exited with an error.
	ErrRemoteFailed = errors.New("vim: remote command failed")

	// ErrTimeout indicates the client process did not complete within the
	// transport deadline.
	ErrTimeout = errors.New("vim: remote command timed out")
)
