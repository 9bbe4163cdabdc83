package shell

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeWindow struct {
	id      WindowID
	mu      sync.Mutex
	title   string
	titles  []string
	closed  bool
	onClose func(WindowID)
}

func (w *fakeWindow) ID() WindowID { return w.id }

func (w *fakeWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
	w.titles = append(w.titles, title)
}

func (w *fakeWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *fakeWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *fakeWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// requestClose simulates the window manager close button.
func (w *fakeWindow) requestClose() {
	w.onClose(w.id)
}

type fakeRenderer struct {
	window    *fakeWindow
	onMessage func(string)
	loadErr   error
	mu        sync.Mutex
	url       string
	closed    bool
}

func (r *fakeRenderer) Load(url string) error {
	if r.loadErr != nil {
		return r.loadErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.url = url
	return nil
}

func (r *fakeRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// send simulates content calling window.ipc.postMessage(msg).
func (r *fakeRenderer) send(msg string) {
	r.onMessage(msg)
}

type fakeBackend struct {
	mu        sync.Mutex
	nextID    WindowID
	windows   []*fakeWindow
	renderers map[WindowID]*fakeRenderer
	options   []WindowOptions

	createErr error
	attachErr error
	loadErr   error
	// reuseID forces every window to get the same identity.
	reuseID WindowID
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{renderers: make(map[WindowID]*fakeRenderer)}
}

func (b *fakeBackend) CreateWindow(opts WindowOptions, onClose func(WindowID)) (Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createErr != nil {
		return nil, b.createErr
	}
	b.nextID++
	id := b.nextID
	if b.reuseID != 0 {
		id = b.reuseID
	}
	w := &fakeWindow{id: id, title: opts.Title, titles: []string{opts.Title}, onClose: onClose}
	b.windows = append(b.windows, w)
	b.options = append(b.options, opts)
	return w, nil
}

func (b *fakeBackend) AttachRenderer(win Window, devtools bool, onMessage func(string)) (Renderer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attachErr != nil {
		return nil, b.attachErr
	}
	fw, ok := win.(*fakeWindow)
	if !ok {
		return nil, errors.New("foreign window")
	}
	r := &fakeRenderer{window: fw, onMessage: onMessage, loadErr: b.loadErr}
	b.renderers[fw.id] = r
	return r, nil
}

func (b *fakeBackend) window(id WindowID) *fakeWindow {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

func (b *fakeBackend) renderer(id WindowID) *fakeRenderer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderers[id]
}

// recordingSink collects posted events in order.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Post(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return true
}

func (s *recordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}
