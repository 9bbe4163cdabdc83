package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/1broseidon/webshell/internal/actionlog"
)

// State is the loop's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

var errNotStarted = errors.New("shell: event loop not started")

// Options configures a Loop.
type Options struct {
	ContentURL string
	Style      Style
	Logger     *slog.Logger
	Actions    *actionlog.Logger
}

// Loop owns the window registry and applies events to it one at a time.
// Start and Run must be called from the same goroutine; Post and Windows are
// safe from any goroutine.
type Loop struct {
	factory  *Factory
	registry *Registry
	queue    *queue
	logger   *slog.Logger
	actions  *actionlog.Logger

	state    atomic.Int32
	done     chan struct{}
	doneOnce sync.Once
}

func New(backend Backend, opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		registry: NewRegistry(),
		queue:    newQueue(),
		logger:   logger,
		actions:  opts.Actions,
		done:     make(chan struct{}),
	}
	l.factory = NewFactory(backend, opts.ContentURL, opts.Style, l, logger)
	l.factory.actions = opts.Actions
	return l
}

// Start opens the first window. An error here is fatal for the process:
// there is no window yet to keep the loop alive.
func (l *Loop) Start() error {
	if l.State() != StateIdle {
		return fmt.Errorf("shell: loop already started")
	}
	e, err := l.factory.Create(windowTitle(0))
	if err != nil {
		return fmt.Errorf("create initial window: %w", err)
	}
	if err := l.registry.Insert(e); err != nil {
		closeEntry(e)
		return fmt.Errorf("register initial window: %w", err)
	}
	l.opened(e)
	l.state.Store(int32(StateRunning))
	return nil
}

// Run blocks, applying queued events until the last window is gone (nil) or
// ctx is cancelled (ctx.Err()). On cancellation every remaining window is
// closed before returning.
func (l *Loop) Run(ctx context.Context) error {
	switch l.State() {
	case StateIdle:
		return errNotStarted
	case StateTerminated:
		return nil
	}

	for {
		ev, ok := l.queue.pop()
		if !ok {
			select {
			case <-l.queue.ready:
				continue
			case <-ctx.Done():
				l.closeAll()
				return ctx.Err()
			}
		}
		if l.handle(ev) == StateTerminated {
			return nil
		}
	}
}

// Post queues ev for the loop. It never blocks and reports false once the
// loop has terminated.
func (l *Loop) Post(ev Event) bool {
	if ev == nil {
		return false
	}
	return l.queue.push(ev)
}

// Windows returns a snapshot of the live windows taken by the loop goroutine
// between two events.
func (l *Loop) Windows(ctx context.Context) ([]WindowInfo, error) {
	reply := make(chan []WindowInfo, 1)
	if !l.queue.push(snapshotRequest{reply: reply}) {
		return nil, ErrTerminated
	}
	select {
	case windows := <-reply:
		return windows, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		select {
		case windows := <-reply:
			return windows, nil
		default:
			return nil, ErrTerminated
		}
	}
}

func (l *Loop) State() State {
	return State(l.state.Load())
}

// Done is closed once the loop reaches StateTerminated.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// handle applies one event and returns the resulting state.
func (l *Loop) handle(ev Event) State {
	if l.State() == StateTerminated {
		return StateTerminated
	}

	switch ev := ev.(type) {
	case NativeCloseRequested:
		l.remove(ev.ID, "native")
	case RequestCloseWindow:
		l.remove(ev.ID, "content")
	case RequestNewWindow:
		l.open()
	case RequestTitleChange:
		l.retitle(ev.ID, ev.Title)
	case snapshotRequest:
		ev.reply <- l.registry.Snapshot()
	default:
		l.logger.Warn("unknown event", "type", fmt.Sprintf("%T", ev))
	}

	if l.State() != StateTerminated && l.registry.Len() == 0 {
		l.terminate()
	}
	return l.State()
}

func (l *Loop) open() {
	title := windowTitle(l.registry.Len())
	e, err := l.factory.Create(title)
	if err != nil {
		l.logger.Error("failed to open window", "title", title, "error", err)
		return
	}
	if err := l.registry.Insert(e); err != nil {
		closeEntry(e)
		l.logger.Error("failed to register window", "title", title, "error", err)
		return
	}
	l.opened(e)
}

func (l *Loop) opened(e *Entry) {
	l.logger.Info("window opened", "window", e.ID, "title", e.Title, "open", l.registry.Len())
	l.actions.Log(actionlog.ActionWindowOpen, uint64(e.ID), map[string]interface{}{
		"title": e.Title,
	})
}

func (l *Loop) remove(id WindowID, source string) {
	e, ok := l.registry.Remove(id)
	if !ok {
		l.logger.Debug("close for unknown window", "window", id, "source", source)
		return
	}
	closeEntry(e)
	l.logger.Info("window closed", "window", id, "source", source, "open", l.registry.Len())
	l.actions.Log(actionlog.ActionWindowClose, uint64(id), map[string]interface{}{
		"source": source,
	})
}

func (l *Loop) retitle(id WindowID, title string) {
	e, ok := l.registry.Get(id)
	if !ok {
		l.logger.Debug("title change for unknown window", "window", id)
		return
	}
	e.Window.SetTitle(title)
	e.Title = title
	l.actions.Log(actionlog.ActionWindowTitle, uint64(id), map[string]interface{}{
		"title": title,
	})
}

func (l *Loop) closeAll() {
	for _, id := range l.registry.IDs() {
		l.remove(id, "shutdown")
	}
	l.terminate()
}

// terminate runs at most once. Pending snapshot requests are answered so
// their callers do not wait for a loop that will never read them.
func (l *Loop) terminate() {
	l.doneOnce.Do(func() {
		l.state.Store(int32(StateTerminated))
		for _, ev := range l.queue.close() {
			if req, ok := ev.(snapshotRequest); ok {
				req.reply <- []WindowInfo{}
			}
		}
		l.logger.Info("last window closed, event loop terminated")
		close(l.done)
	})
}

func closeEntry(e *Entry) {
	if e.Renderer != nil {
		e.Renderer.Close()
	}
	if e.Window != nil {
		e.Window.Close()
	}
}

func windowTitle(open int) string {
	return fmt.Sprintf("Window %d", open+1)
}
