package mcp

import "time"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo describes one open shell window.
type WindowInfo struct {
	ID      uint64    `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
	Count   int          `json:"count"`
}

// NewWindowInput is the input for the new_window tool.
type NewWindowInput struct{}

// CloseWindowInput is the input for the close_window tool.
type CloseWindowInput struct {
	ID uint64 `json:"id" jsonschema:"ID of the window to close, as reported by list_windows"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	ID    uint64 `json:"id" jsonschema:"ID of the window to retitle"`
	Title string `json:"title" jsonschema:"New window title"`
}

// SendMessageInput is the input for the send_message tool.
type SendMessageInput struct {
	ID      uint64 `json:"id,omitempty" jsonschema:"Window the message is attributed to (ignored for new-window)"`
	Message string `json:"message" jsonschema:"Content message: new-window, close or change-title:<title>"`
}

// AckOutput is returned by tools that only post a request to the shell.
type AckOutput struct {
	Accepted bool `json:"accepted"`
}
