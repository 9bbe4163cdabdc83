//go:build linux

package gtkui

import (
	"testing"

	"github.com/gotk3/gotk3/gdk"

	"github.com/1broseidon/webshell/internal/shell"
)

func TestStackingFor(t *testing.T) {
	tests := []struct {
		layer shell.Layer
		want  stacking
	}{
		{shell.LayerBackground, stacking{typeHint: gdk.WINDOW_TYPE_HINT_DESKTOP, keepBelow: true, skipTaskbar: true}},
		{shell.LayerBottom, stacking{typeHint: gdk.WINDOW_TYPE_HINT_NORMAL, keepBelow: true, skipTaskbar: true}},
		{shell.LayerNormal, stacking{typeHint: gdk.WINDOW_TYPE_HINT_NORMAL}},
		{shell.LayerTop, stacking{typeHint: gdk.WINDOW_TYPE_HINT_DOCK, keepAbove: true, skipTaskbar: true}},
		{"", stacking{typeHint: gdk.WINDOW_TYPE_HINT_NORMAL}},
	}
	for _, tt := range tests {
		t.Run(string(tt.layer), func(t *testing.T) {
			if got := stackingFor(tt.layer); got != tt.want {
				t.Fatalf("stackingFor(%q) = %+v, want %+v", tt.layer, got, tt.want)
			}
		})
	}
}
