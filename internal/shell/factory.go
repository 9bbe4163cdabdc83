package shell

import (
	"log/slog"
	"time"

	"github.com/1broseidon/webshell/internal/actionlog"
)

// Factory builds window entries through a Backend and wires each renderer's
// messages to Dispatch, attributed to the renderer's own window.
type Factory struct {
	backend    Backend
	contentURL string
	style      Style
	sink       Sink
	logger     *slog.Logger
	actions    *actionlog.Logger
	now        func() time.Time
}

func NewFactory(backend Backend, contentURL string, style Style, sink Sink, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		backend:    backend,
		contentURL: contentURL,
		style:      style,
		sink:       sink,
		logger:     logger,
		now:        time.Now,
	}
}

// Create opens a window titled title and loads the content root into it.
func (f *Factory) Create(title string) (*Entry, error) {
	win, err := f.backend.CreateWindow(WindowOptions{Title: title, Style: f.style}, func(id WindowID) {
		f.sink.Post(NativeCloseRequested{ID: id})
	})
	if err != nil {
		return nil, &WindowError{Op: "create window", Kind: KindWindow, Err: err}
	}

	id := win.ID()
	renderer, err := f.backend.AttachRenderer(win, f.style.Devtools, func(msg string) {
		f.actions.Log(actionlog.ActionMessage, uint64(id), map[string]interface{}{
			"message": msg,
		})
		ev, ok := Dispatch(msg, id)
		if !ok {
			f.logger.Debug("ignoring message", "window", id, "message", msg)
			return
		}
		f.sink.Post(ev)
	})
	if err != nil {
		win.Close()
		return nil, &WindowError{Op: "attach renderer", ID: id, Kind: KindRenderer, Err: err}
	}

	if err := renderer.Load(f.contentURL); err != nil {
		renderer.Close()
		win.Close()
		return nil, &WindowError{Op: "load content", ID: id, Kind: KindRenderer, Err: err}
	}

	return &Entry{
		ID:       id,
		Window:   win,
		Renderer: renderer,
		Title:    title,
		Created:  f.now(),
	}, nil
}
