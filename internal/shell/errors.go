package shell

import (
	"errors"
	"fmt"
)

// ErrTerminated is returned when the loop has already shut down.
var ErrTerminated = errors.New("shell: event loop terminated")

// ErrorKind classifies window lifecycle failures.
type ErrorKind int

const (
	KindWindow ErrorKind = iota + 1
	KindRenderer
	KindDuplicate
)

func (k ErrorKind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindRenderer:
		return "renderer"
	case KindDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// WindowError reports a failure to create or register a window.
type WindowError struct {
	Op   string
	ID   WindowID // zero when the native window was never created
	Kind ErrorKind
	Err  error
}

func (e *WindowError) Error() string {
	if e == nil {
		return "window error"
	}
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.ID != 0 {
		msg += fmt.Sprintf(" (window %s)", e.ID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *WindowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a *WindowError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var we *WindowError
	if errors.As(err, &we) {
		return we.Kind == kind
	}
	return false
}
