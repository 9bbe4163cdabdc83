package shell

import "fmt"

// WindowID identifies one live window. Values are assigned by the backend
// when the native window is created and are only compared, never interpreted.
type WindowID uint64

func (id WindowID) String() string {
	return fmt.Sprintf("%d", uint64(id))
}

// Event is a requested window-state change consumed by the Loop.
type Event interface {
	isEvent()
}

// RequestNewWindow asks the loop to open one more window.
type RequestNewWindow struct{}

// RequestCloseWindow asks the loop to close the window with the given ID.
type RequestCloseWindow struct {
	ID WindowID
}

// RequestTitleChange asks the loop to retitle a window.
type RequestTitleChange struct {
	ID    WindowID
	Title string
}

// NativeCloseRequested is posted by the backend when the platform asks to
// close a window (window manager close button, Alt+F4, ...).
type NativeCloseRequested struct {
	ID WindowID
}

// snapshotRequest is answered by the loop goroutine with the current
// registry contents.
type snapshotRequest struct {
	reply chan []WindowInfo
}

func (RequestNewWindow) isEvent()     {}
func (RequestCloseWindow) isEvent()   {}
func (RequestTitleChange) isEvent()   {}
func (NativeCloseRequested) isEvent() {}
func (snapshotRequest) isEvent()      {}

// Sink accepts events from producers on any goroutine.
type Sink interface {
	Post(ev Event) bool
}
