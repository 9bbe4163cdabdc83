package shell

import "strings"

// Messages understood from embedded content.
const (
	MessageNewWindow   = "new-window"
	MessageClose       = "close"
	MessageChangeTitle = "change-title"

	changeTitleToken = MessageChangeTitle + ":"
)

// Dispatch classifies a message sent by the content of window id. It reports
// false for messages that do not map to any event.
//
// For change-title messages every occurrence of "change-title:" is removed
// from the message, not only the leading one.
func Dispatch(msg string, id WindowID) (Event, bool) {
	switch {
	case msg == MessageNewWindow:
		return RequestNewWindow{}, true
	case msg == MessageClose:
		return RequestCloseWindow{ID: id}, true
	case strings.HasPrefix(msg, MessageChangeTitle):
		return RequestTitleChange{ID: id, Title: strings.ReplaceAll(msg, changeTitleToken, "")}, true
	default:
		return nil, false
	}
}
