package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/webshell/internal/shell"
)

type fakeController struct {
	windows []shell.WindowInfo
	err     error
	calls   []string
}

func (f *fakeController) ListWindows() ([]shell.WindowInfo, error) {
	f.calls = append(f.calls, "list")
	return f.windows, f.err
}

func (f *fakeController) NewWindow() error {
	f.calls = append(f.calls, "new")
	return f.err
}

func (f *fakeController) CloseWindow(id shell.WindowID) error {
	f.calls = append(f.calls, "close "+id.String())
	return f.err
}

func (f *fakeController) SetTitle(id shell.WindowID, title string) error {
	f.calls = append(f.calls, "title "+id.String()+" "+title)
	return f.err
}

func (f *fakeController) SendMessage(id shell.WindowID, message string) error {
	f.calls = append(f.calls, "send "+id.String()+" "+message)
	return f.err
}

func newTestServer(t *testing.T, ctl *fakeController) *Server {
	t.Helper()
	s, err := NewServer(ctl)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func TestNewServer_RequiresController(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Fatal("expected error for nil controller")
	}
}

func TestHandleListWindows(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ctl := &fakeController{windows: []shell.WindowInfo{
		{ID: 1, Title: "Window 1", Created: created},
		{ID: 4, Title: "Inbox", Created: created},
	}}
	s := newTestServer(t, ctl)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if out.Count != 2 || out.Windows[1].ID != 4 || out.Windows[1].Title != "Inbox" || !out.Windows[0].Created.Equal(created) {
		t.Fatalf("output = %+v", out)
	}
}

func TestHandleListWindows_EmptyIsNotNil(t *testing.T) {
	s := newTestServer(t, &fakeController{})
	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if out.Windows == nil || out.Count != 0 {
		t.Fatalf("output = %+v", out)
	}
}

func TestWindowTools_Forward(t *testing.T) {
	ctl := &fakeController{}
	s := newTestServer(t, ctl)
	ctx := context.Background()

	if _, out, err := s.handleNewWindow(ctx, nil, NewWindowInput{}); err != nil || !out.Accepted {
		t.Fatalf("new_window = %+v, %v", out, err)
	}
	if _, _, err := s.handleCloseWindow(ctx, nil, CloseWindowInput{ID: 2}); err != nil {
		t.Fatalf("close_window: %v", err)
	}
	if _, _, err := s.handleSetTitle(ctx, nil, SetTitleInput{ID: 3, Title: "Mail"}); err != nil {
		t.Fatalf("set_title: %v", err)
	}
	if _, _, err := s.handleSendMessage(ctx, nil, SendMessageInput{ID: 3, Message: "change-title:x"}); err != nil {
		t.Fatalf("send_message: %v", err)
	}

	want := []string{"new", "close 2", "title 3 Mail", "send 3 change-title:x"}
	if strings.Join(ctl.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls = %v, want %v", ctl.calls, want)
	}
}

func TestWindowTools_Validation(t *testing.T) {
	ctl := &fakeController{}
	s := newTestServer(t, ctl)
	ctx := context.Background()

	if _, _, err := s.handleCloseWindow(ctx, nil, CloseWindowInput{}); err == nil {
		t.Fatal("close_window without id succeeded")
	}
	if _, _, err := s.handleSetTitle(ctx, nil, SetTitleInput{Title: "x"}); err == nil {
		t.Fatal("set_title without id succeeded")
	}
	if _, _, err := s.handleSendMessage(ctx, nil, SendMessageInput{ID: 1, Message: "reboot"}); err == nil || !strings.Contains(err.Error(), "unrecognised") {
		t.Fatalf("send_message error = %v", err)
	}
	if len(ctl.calls) != 0 {
		t.Fatalf("invalid calls reached the controller: %v", ctl.calls)
	}
}

func TestWindowTools_PropagateErrors(t *testing.T) {
	boom := errors.New("webshell error: unknown window 9")
	s := newTestServer(t, &fakeController{err: boom})
	ctx := context.Background()

	if _, _, err := s.handleListWindows(ctx, nil, ListWindowsInput{}); !errors.Is(err, boom) {
		t.Fatalf("list_windows error = %v", err)
	}
	if _, out, err := s.handleCloseWindow(ctx, nil, CloseWindowInput{ID: 9}); !errors.Is(err, boom) || out.Accepted {
		t.Fatalf("close_window = %+v, %v", out, err)
	}
}
