// Package clipboard wraps the system clipboard behind a discriminated read
// result, so callers can distinguish "no clipboard on this platform" from
// "the read was refused" from an ordinary failure.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadStatus classifies the outcome of a clipboard read.
type ReadStatus int

const (
	// StatusContent means the read succeeded and Text carries the payload.
	StatusContent ReadStatus = iota
	// StatusDenied means the platform refused access to the clipboard.
	StatusDenied
	// StatusUnsupported means no clipboard mechanism exists here.
	StatusUnsupported
	// StatusError is any other failure; Err carries the cause.
	StatusError
)

// ReadResult is the outcome of one clipboard read.
type ReadResult struct {
	Status ReadStatus
	Text   string
	Err    error
}

// Indirection for tests.
var (
	readAll       = clipboard.ReadAll
	isUnsupported = func() bool { return clipboard.Unsupported }
)

// Read fetches the clipboard contents. Never panics; every failure mode maps
// to a status.
func Read() ReadResult {
	if isUnsupported() {
		return ReadResult{Status: StatusUnsupported}
	}
	text, err := readAll()
	if err == nil {
		return ReadResult{Status: StatusContent, Text: text}
	}
	if deniedError(err) {
		return ReadResult{Status: StatusDenied, Err: err}
	}
	return ReadResult{Status: StatusError, Err: err}
}

// WriteString places text on the clipboard. Used by registration to offer
// the generated phrase for safekeeping.
func WriteString(text string) error {
	return clipboard.WriteAll(text)
}

// deniedError spots permission-style refusals. Wayland/X11 helpers report
// these as plain errors with no sentinel to match on.
func deniedError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "denied") || strings.Contains(msg, "not allowed") || strings.Contains(msg, "permission")
}
