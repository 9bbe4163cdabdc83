package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWindowConfig struct {
	Width       *int    `yaml:"width"`
	Height      *int    `yaml:"height"`
	Layer       *string `yaml:"layer"`
	Decorated   *bool   `yaml:"decorated"`
	Resizable   *bool   `yaml:"resizable"`
	Sticky      *bool   `yaml:"sticky"`
	Keyboard    *bool   `yaml:"keyboard"`
	Transparent *bool   `yaml:"transparent"`
	Devtools    *bool   `yaml:"devtools"`
}

type RawHotkeysConfig struct {
	NewWindow *string `yaml:"new_window"`
}

type RawControlConfig struct {
	Socket *bool `yaml:"socket"`
}

type RawLoggingConfig struct {
	Enabled       *bool   `yaml:"enabled"`
	Level         *string `yaml:"level"`
	File          *string `yaml:"file"`
	MaxSizeMB     *int    `yaml:"max_size_mb"`
	MaxFiles      *int    `yaml:"max_files"`
	PreviewLength *int    `yaml:"preview_length"`
}

// RawConfig mirrors one YAML file. Nil fields were not set by that file.
type RawConfig struct {
	Include    IncludeList       `yaml:"include"`
	ContentDir *string           `yaml:"content_dir"`
	Display    *string           `yaml:"display"`
	XAuthority *string           `yaml:"xauthority"`
	LogLevel   *string           `yaml:"log_level"`
	Window     *RawWindowConfig  `yaml:"window"`
	Hotkeys    *RawHotkeysConfig `yaml:"hotkeys"`
	Control    *RawControlConfig `yaml:"control"`
	Logging    *RawLoggingConfig `yaml:"logging"`
}

// merge returns c with every field set in overlay replaced.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil
	if overlay.ContentDir != nil {
		out.ContentDir = overlay.ContentDir
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Window != nil {
		base := RawWindowConfig{}
		if out.Window != nil {
			base = *out.Window
		}
		merged := mergeRawWindow(base, *overlay.Window)
		out.Window = &merged
	}
	if overlay.Hotkeys != nil {
		merged := RawHotkeysConfig{}
		if out.Hotkeys != nil {
			merged = *out.Hotkeys
		}
		if overlay.Hotkeys.NewWindow != nil {
			merged.NewWindow = overlay.Hotkeys.NewWindow
		}
		out.Hotkeys = &merged
	}
	if overlay.Control != nil {
		merged := RawControlConfig{}
		if out.Control != nil {
			merged = *out.Control
		}
		if overlay.Control.Socket != nil {
			merged.Socket = overlay.Control.Socket
		}
		out.Control = &merged
	}
	if overlay.Logging != nil {
		base := RawLoggingConfig{}
		if out.Logging != nil {
			base = *out.Logging
		}
		merged := mergeRawLogging(base, *overlay.Logging)
		out.Logging = &merged
	}
	return out
}

func mergeRawWindow(base RawWindowConfig, overlay RawWindowConfig) RawWindowConfig {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Layer != nil {
		out.Layer = overlay.Layer
	}
	if overlay.Decorated != nil {
		out.Decorated = overlay.Decorated
	}
	if overlay.Resizable != nil {
		out.Resizable = overlay.Resizable
	}
	if overlay.Sticky != nil {
		out.Sticky = overlay.Sticky
	}
	if overlay.Keyboard != nil {
		out.Keyboard = overlay.Keyboard
	}
	if overlay.Transparent != nil {
		out.Transparent = overlay.Transparent
	}
	if overlay.Devtools != nil {
		out.Devtools = overlay.Devtools
	}
	return out
}

func mergeRawLogging(base RawLoggingConfig, overlay RawLoggingConfig) RawLoggingConfig {
	out := base
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.File != nil {
		out.File = overlay.File
	}
	if overlay.MaxSizeMB != nil {
		out.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxFiles != nil {
		out.MaxFiles = overlay.MaxFiles
	}
	if overlay.PreviewLength != nil {
		out.PreviewLength = overlay.PreviewLength
	}
	return out
}
