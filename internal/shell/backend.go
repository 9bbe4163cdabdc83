package shell

// Layer is the stacking layer a shell window is placed in.
type Layer string

const (
	LayerBackground Layer = "background"
	LayerBottom     Layer = "bottom"
	LayerNormal     Layer = "normal"
	LayerTop        Layer = "top"
)

// Style is passed through to the backend unchanged for every window.
type Style struct {
	X           int
	Y           int
	Width       int
	Height      int
	Layer       Layer
	Decorated   bool
	Resizable   bool
	Sticky      bool
	Keyboard    bool
	Transparent bool
	Devtools    bool
}

// WindowOptions describes one window to create.
type WindowOptions struct {
	Title string
	Style Style
}

// Window is a native platform window.
type Window interface {
	ID() WindowID
	SetTitle(title string)
	Close()
}

// Renderer is an embedded web view bound to one Window.
type Renderer interface {
	Load(url string) error
	Close()
}

// Backend creates native windows and renderers. Implementations may invoke
// the callbacks from any goroutine.
type Backend interface {
	// CreateWindow creates and shows a native window. onClose is called with
	// the window's ID whenever the platform asks for the window to close;
	// the window stays open until Close is called.
	CreateWindow(opts WindowOptions, onClose func(WindowID)) (Window, error)
	// AttachRenderer embeds a renderer in win. onMessage receives every
	// message string posted by the loaded content.
	AttachRenderer(win Window, devtools bool, onMessage func(string)) (Renderer, error)
}
