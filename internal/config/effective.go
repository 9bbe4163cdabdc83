package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.ContentDir != nil {
		cfg.ContentDir = *raw.ContentDir
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	if w := raw.Window; w != nil {
		cfg.Window.Width = derefInt(w.Width, cfg.Window.Width)
		cfg.Window.Height = derefInt(w.Height, cfg.Window.Height)
		if w.Layer != nil {
			cfg.Window.Layer = *w.Layer
		}
		cfg.Window.Decorated = derefBool(w.Decorated, cfg.Window.Decorated)
		cfg.Window.Resizable = derefBool(w.Resizable, cfg.Window.Resizable)
		cfg.Window.Sticky = derefBool(w.Sticky, cfg.Window.Sticky)
		cfg.Window.Keyboard = derefBool(w.Keyboard, cfg.Window.Keyboard)
		cfg.Window.Transparent = derefBool(w.Transparent, cfg.Window.Transparent)
		cfg.Window.Devtools = derefBool(w.Devtools, cfg.Window.Devtools)
	}

	if raw.Hotkeys != nil && raw.Hotkeys.NewWindow != nil {
		cfg.Hotkeys.NewWindow = *raw.Hotkeys.NewWindow
	}
	if raw.Control != nil {
		cfg.Control.Socket = derefBool(raw.Control.Socket, cfg.Control.Socket)
	}

	if l := raw.Logging; l != nil {
		cfg.Logging.Enabled = derefBool(l.Enabled, cfg.Logging.Enabled)
		if l.Level != nil {
			cfg.Logging.Level = *l.Level
		}
		if l.File != nil {
			cfg.Logging.File = *l.File
		}
		cfg.Logging.MaxSizeMB = derefInt(l.MaxSizeMB, cfg.Logging.MaxSizeMB)
		cfg.Logging.MaxFiles = derefInt(l.MaxFiles, cfg.Logging.MaxFiles)
		cfg.Logging.PreviewLength = derefInt(l.PreviewLength, cfg.Logging.PreviewLength)
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
