//go:build linux

package gtkui

import (
	"github.com/gotk3/gotk3/gdk"

	"github.com/1broseidon/webshell/internal/shell"
)

// stacking is how a shell layer maps onto window manager hints.
type stacking struct {
	typeHint    gdk.WindowTypeHint
	keepBelow   bool
	keepAbove   bool
	skipTaskbar bool
}

func stackingFor(layer shell.Layer) stacking {
	switch layer {
	case shell.LayerBackground:
		return stacking{typeHint: gdk.WINDOW_TYPE_HINT_DESKTOP, keepBelow: true, skipTaskbar: true}
	case shell.LayerBottom:
		return stacking{typeHint: gdk.WINDOW_TYPE_HINT_NORMAL, keepBelow: true, skipTaskbar: true}
	case shell.LayerTop:
		return stacking{typeHint: gdk.WINDOW_TYPE_HINT_DOCK, keepAbove: true, skipTaskbar: true}
	default:
		return stacking{typeHint: gdk.WINDOW_TYPE_HINT_NORMAL}
	}
}
