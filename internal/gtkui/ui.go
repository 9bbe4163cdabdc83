//go:build linux

// Package gtkui implements the shell backend with GTK windows hosting
// WebKitGTK renderers. GTK is single-threaded: Init and Main must run on the
// locked main OS thread, and every other call is marshalled onto it.
package gtkui

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

var errStopped = errors.New("gtkui: main loop stopped")

// UI owns the GTK main loop.
type UI struct {
	logger   *slog.Logger
	quitting atomic.Bool
}

// Init initialises GTK. It fails when no display can be opened.
func Init(logger *slog.Logger) (*UI, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := gtk.InitCheck(nil); err != nil {
		return nil, err
	}
	return &UI{logger: logger}, nil
}

// Main runs the GTK main loop until Quit. Renderers stop the loop when their
// host window is destroyed, so it is re-entered until a quit was requested.
func (u *UI) Main() {
	for !u.quitting.Load() {
		gtk.Main()
	}
}

// Quit makes Main return. Safe from any goroutine.
func (u *UI) Quit() {
	if u.quitting.Swap(true) {
		return
	}
	glib.IdleAdd(func() bool {
		gtk.MainQuit()
		return false
	})
}

// post schedules f on the GTK thread without waiting.
func (u *UI) post(f func()) {
	if u.quitting.Load() {
		return
	}
	glib.IdleAdd(func() bool {
		f()
		return false
	})
}

// call runs f on the GTK thread and waits for its result. It must not be
// called from the GTK thread itself.
func (u *UI) call(f func() error) error {
	if u.quitting.Load() {
		return errStopped
	}
	done := make(chan error, 1)
	glib.IdleAdd(func() bool {
		done <- f()
		return false
	})
	return <-done
}
