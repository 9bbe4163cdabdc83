package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/webshell/internal/shell"
)

type fakeClient struct {
	windows []shell.WindowInfo
	listErr error
	actErr  error

	newCalls int
	closed   []shell.WindowID
	titles   map[shell.WindowID]string
}

func (f *fakeClient) ListWindows() ([]shell.WindowInfo, error) {
	return f.windows, f.listErr
}

func (f *fakeClient) NewWindow() error {
	f.newCalls++
	return f.actErr
}

func (f *fakeClient) CloseWindow(id shell.WindowID) error {
	f.closed = append(f.closed, id)
	return f.actErr
}

func (f *fakeClient) SetTitle(id shell.WindowID, title string) error {
	if f.titles == nil {
		f.titles = make(map[shell.WindowID]string)
	}
	f.titles[id] = title
	return f.actErr
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a sized model whose list reflects client's windows.
func loaded(t *testing.T, client *fakeClient) model {
	t.Helper()
	m := newModel(client)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	next, _ = next.Update(m.refresh()())
	return next.(model)
}

func TestUpdate_WindowsMsg(t *testing.T) {
	client := &fakeClient{windows: []shell.WindowInfo{
		{ID: 1, Title: "Window 1"},
		{ID: 2, Title: "Window 2"},
	}}
	m := loaded(t, client)

	if !m.connected {
		t.Fatal("expected connected after successful list")
	}
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}

	client.listErr = errors.New("dial unix: no such file")
	next, _ := m.Update(m.refresh()())
	m = next.(model)
	if m.connected {
		t.Fatal("expected disconnected after list error")
	}
	if got := len(m.list.Items()); got != 0 {
		t.Fatalf("items = %d, want 0 after disconnect", got)
	}
}

func TestUpdate_Keys(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantNew   int
		wantClose []shell.WindowID
		wantText  string
	}{
		{name: "new window", key: "n", wantNew: 1, wantText: "new window requested"},
		{name: "close selected", key: "d", wantClose: []shell.WindowID{7}, wantText: "close requested for window 7"},
		{name: "close alias", key: "x", wantClose: []shell.WindowID{7}, wantText: "close requested for window 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{windows: []shell.WindowInfo{{ID: 7, Title: "Window 1"}}}
			m := loaded(t, client)

			_, cmd := m.Update(key(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			msg, ok := cmd().(statusMsg)
			if !ok {
				t.Fatalf("expected statusMsg, got %T", cmd())
			}
			if msg.text != tt.wantText {
				t.Errorf("status = %q, want %q", msg.text, tt.wantText)
			}
			if client.newCalls != tt.wantNew {
				t.Errorf("NewWindow calls = %d, want %d", client.newCalls, tt.wantNew)
			}
			if len(client.closed) != len(tt.wantClose) {
				t.Fatalf("closed = %v, want %v", client.closed, tt.wantClose)
			}
			for i := range tt.wantClose {
				if client.closed[i] != tt.wantClose[i] {
					t.Errorf("closed[%d] = %d, want %d", i, client.closed[i], tt.wantClose[i])
				}
			}
		})
	}
}

func TestUpdate_CloseWithoutSelection(t *testing.T) {
	client := &fakeClient{}
	m := loaded(t, client)

	_, cmd := m.Update(key("d"))
	if cmd != nil {
		t.Fatal("expected no command with an empty list")
	}
	if len(client.closed) != 0 {
		t.Fatalf("closed = %v, want none", client.closed)
	}
}

func TestUpdate_ActionError(t *testing.T) {
	client := &fakeClient{actErr: errors.New("shell is shutting down")}
	m := loaded(t, client)

	_, cmd := m.Update(key("n"))
	msg := cmd().(statusMsg)
	if !strings.HasPrefix(msg.text, "error: ") || !strings.Contains(msg.text, "shutting down") {
		t.Fatalf("status = %q, want error text", msg.text)
	}

	next, _ := m.Update(msg)
	if got := next.(model).statusText; got != msg.text {
		t.Fatalf("statusText = %q, want %q", got, msg.text)
	}
}

func TestUpdate_RenameStartAndCancel(t *testing.T) {
	client := &fakeClient{windows: []shell.WindowInfo{{ID: 3, Title: "Window 1"}}}
	m := loaded(t, client)

	next, _ := m.Update(key("r"))
	m = next.(model)
	if !m.renaming || m.form == nil {
		t.Fatal("expected rename form to open")
	}
	if m.renameID != 3 {
		t.Fatalf("renameID = %d, want 3", m.renameID)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	if m.renaming || m.form != nil {
		t.Fatal("expected esc to close the rename form")
	}
	if len(client.titles) != 0 {
		t.Fatalf("titles = %v, want none", client.titles)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := loaded(t, &fakeClient{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestWindowItem(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local)
	item := windowItem{info: shell.WindowInfo{ID: 4, Title: "Window 2", Created: created}}

	if got := item.Title(); got != "#4  Window 2" {
		t.Errorf("Title() = %q", got)
	}
	if got := item.Description(); got != "opened 09:30:15" {
		t.Errorf("Description() = %q", got)
	}
	if got := (windowItem{}).Description(); got != "" {
		t.Errorf("zero Description() = %q, want empty", got)
	}
}

func TestView(t *testing.T) {
	if got := newModel(&fakeClient{}).View(); got != "" {
		t.Fatalf("unsized View() = %q, want empty", got)
	}

	m := loaded(t, &fakeClient{listErr: errors.New("down")})
	if !strings.Contains(m.View(), "webshell is not running") {
		t.Fatal("expected offline placeholder")
	}

	m = loaded(t, &fakeClient{windows: []shell.WindowInfo{{ID: 1, Title: "Window 1"}}})
	view := m.View()
	if !strings.Contains(view, "windows:1") {
		t.Fatalf("expected window count in status bar, got %q", view)
	}
}
