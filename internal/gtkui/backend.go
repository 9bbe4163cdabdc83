//go:build linux

package gtkui

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gotk3/gotk3/gtk"
	webview "github.com/webview/webview_go"

	"github.com/1broseidon/webshell/internal/shell"
)

// Backend creates GTK windows with embedded webviews. It implements
// shell.Backend; its methods may be called from any goroutine except the GTK
// thread.
type Backend struct {
	ui     *UI
	logger *slog.Logger
	nextID atomic.Uint64
}

var _ shell.Backend = (*Backend)(nil)

func NewBackend(ui *UI, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{ui: ui, logger: logger}
}

// window is a GTK toplevel. Its fields are only touched on the GTK thread.
type window struct {
	id        shell.WindowID
	ui        *UI
	win       *gtk.Window
	destroyed bool
}

func (w *window) ID() shell.WindowID { return w.id }

func (w *window) SetTitle(title string) {
	w.ui.post(func() {
		if !w.destroyed {
			w.win.SetTitle(title)
		}
	})
}

func (w *window) Close() {
	w.ui.post(func() {
		if w.destroyed {
			return
		}
		w.destroyed = true
		w.win.Destroy()
	})
}

// CreateWindow builds and shows a toplevel styled per opts. A close request
// from the window manager is reported through onClose and otherwise refused.
func (b *Backend) CreateWindow(opts shell.WindowOptions, onClose func(shell.WindowID)) (shell.Window, error) {
	w := &window{id: shell.WindowID(b.nextID.Add(1)), ui: b.ui}
	err := b.ui.call(func() error {
		win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
		if err != nil {
			return err
		}
		w.win = win
		applyStyle(win, opts.Title, opts.Style)

		win.Connect("delete-event", func() bool {
			onClose(w.id)
			return true
		})
		win.Connect("destroy", func() {
			w.destroyed = true
		})

		win.ShowAll()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gtk window: %w", err)
	}
	b.logger.Debug("native window created", "window", w.id, "title", opts.Title)
	return w, nil
}

func applyStyle(win *gtk.Window, title string, style shell.Style) {
	win.SetTitle(title)
	win.SetDecorated(style.Decorated)
	win.SetResizable(style.Resizable)
	win.SetDefaultSize(style.Width, style.Height)
	if !style.Resizable {
		win.SetSizeRequest(style.Width, style.Height)
	}
	win.Move(style.X, style.Y)
	win.SetAcceptFocus(style.Keyboard)

	st := stackingFor(style.Layer)
	win.SetTypeHint(st.typeHint)
	win.SetKeepBelow(st.keepBelow)
	win.SetKeepAbove(st.keepAbove)
	win.SetSkipTaskbarHint(st.skipTaskbar)
	win.SetSkipPagerHint(st.skipTaskbar)
	if style.Sticky {
		win.Stick()
	}

	if style.Transparent {
		win.SetAppPaintable(true)
		if screen, err := win.GetScreen(); err == nil {
			if visual, err := screen.GetRGBAVisual(); err == nil && visual != nil {
				win.SetVisual(visual)
			}
		}
	}
}

// renderer is a webview embedded in a window.
type renderer struct {
	ui     *UI
	view   webview.WebView
	once   sync.Once
	closed atomic.Bool
}

// AttachRenderer embeds a webview in win and routes window.ipc.postMessage
// calls to onMessage.
func (b *Backend) AttachRenderer(win shell.Window, devtools bool, onMessage func(string)) (shell.Renderer, error) {
	w, ok := win.(*window)
	if !ok {
		return nil, errors.New("gtkui: window was not created by this backend")
	}
	r := &renderer{ui: b.ui}
	err := b.ui.call(func() error {
		if w.destroyed {
			return errors.New("window already destroyed")
		}
		view := webview.NewWindow(devtools, unsafe.Pointer(w.win.Native()))
		if view == nil {
			return errors.New("webview creation failed")
		}
		if err := view.Bind(bindingName, func(msg string) {
			if !r.closed.Load() {
				onMessage(msg)
			}
		}); err != nil {
			view.Destroy()
			return fmt.Errorf("bind %s: %w", bindingName, err)
		}
		view.Init(bridgeScript())
		r.view = view
		w.win.ShowAll()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("webview: %w", err)
	}
	return r, nil
}

// Load navigates the renderer to url. Navigation is asynchronous; page load
// failures are reported by the renderer itself.
func (r *renderer) Load(url string) error {
	return r.ui.call(func() error {
		if r.closed.Load() {
			return errors.New("renderer closed")
		}
		r.view.Navigate(url)
		return nil
	})
}

func (r *renderer) Close() {
	r.once.Do(func() {
		r.closed.Store(true)
		r.ui.post(func() {
			r.view.Destroy()
		})
	})
}
