package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/webshell/internal/shell"
	"github.com/1broseidon/webshell/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Handler manages global keyboard shortcuts on the root window.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler bound to conn.
func NewHandler(conn *x11.Connection, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})
	return &Handler{
		xu:     conn.XUtil,
		root:   conn.Root,
		logger: logger,
	}
}

// RegisterNewWindow binds keySequence to posting a new-window request.
func (h *Handler) RegisterNewWindow(keySequence string, sink shell.Sink) error {
	if err := h.RegisterFunc(keySequence, func() {
		h.logger.Debug("new-window hotkey triggered", "keys", keySequence)
		if !sink.Post(shell.RequestNewWindow{}) {
			h.logger.Debug("hotkey ignored, shell is shutting down")
		}
	}); err != nil {
		return fmt.Errorf("failed to register new-window hotkey %q: %w", keySequence, err)
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// configureIgnoreMods makes bindings fire regardless of CapsLock, NumLock and
// ScrollLock state.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	caps := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")
	xevent.IgnoreMods = ignoreModCombinations(caps, numLock, scrollLock)
}

// ignoreModCombinations returns every OR-combination of the distinct
// non-zero masks, including 0.
func ignoreModCombinations(masks ...uint16) []uint16 {
	var base []uint16
	for _, m := range masks {
		if m == 0 {
			continue
		}
		dup := false
		for _, b := range base {
			if b == m {
				dup = true
				break
			}
		}
		if !dup {
			base = append(base, m)
		}
	}

	seen := map[uint16]bool{}
	var out []uint16
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		if !seen[mask] {
			seen[mask] = true
			out = append(out, mask)
		}
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
