package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layer names accepted by window.layer.
const (
	LayerBackground = "background"
	LayerBottom     = "bottom"
	LayerNormal     = "normal"
	LayerTop        = "top"
)

const (
	DefaultMaxLogSizeMB  = 10
	DefaultMaxLogFiles   = 3
	DefaultPreviewLength = 50
)

// WindowConfig controls how every shell window is created.
type WindowConfig struct {
	// Width and Height of 0 mean "size of the primary monitor".
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Layer       string `yaml:"layer"`
	Decorated   bool   `yaml:"decorated"`
	Resizable   bool   `yaml:"resizable"`
	Sticky      bool   `yaml:"sticky"`
	Keyboard    bool   `yaml:"keyboard"`
	Transparent bool   `yaml:"transparent"`
	Devtools    bool   `yaml:"devtools"`
}

type HotkeysConfig struct {
	// NewWindow is an xgbutil key string such as "Mod4-Return". Empty disables it.
	NewWindow string `yaml:"new_window"`
}

type ControlConfig struct {
	Socket bool `yaml:"socket"`
}

// LoggingConfig configures the window action log.
type LoggingConfig struct {
	// Enabled turns action logging on/off
	Enabled bool `yaml:"enabled"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File is the log file path (default: ~/.local/share/webshell/actions.log)
	File string `yaml:"file"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files"`
	// PreviewLength is the number of characters of a message kept in the log (default: 50)
	PreviewLength int `yaml:"preview_length"`
}

// Config is the effective webshell configuration.
type Config struct {
	ContentDir string        `yaml:"content_dir"`
	Display    string        `yaml:"display"`
	XAuthority string        `yaml:"xauthority"`
	LogLevel   string        `yaml:"log_level"`
	Window     WindowConfig  `yaml:"window"`
	Hotkeys    HotkeysConfig `yaml:"hotkeys"`
	Control    ControlConfig `yaml:"control"`
	Logging    LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns a configuration that opens full-monitor, undecorated
// windows below normal windows.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Window: WindowConfig{
			Layer:       LayerBottom,
			Sticky:      true,
			Keyboard:    true,
			Transparent: true,
			Devtools:    true,
		},
		Control: ControlConfig{Socket: true},
		Logging: LoggingConfig{
			Level:         "info",
			MaxSizeMB:     DefaultMaxLogSizeMB,
			MaxFiles:      DefaultMaxLogFiles,
			PreviewLength: DefaultPreviewLength,
		},
	}
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = os.Getenv("HOME")
		}
		if home == "" {
			home = "."
		}
		cfg.File = filepath.Join(home, ".local/share/webshell/actions.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = DefaultMaxLogSizeMB
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = DefaultMaxLogFiles
	}
	if cfg.PreviewLength == 0 {
		cfg.PreviewLength = DefaultPreviewLength
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// WindowSize resolves the configured window size against the size of the
// primary monitor. Zero dimensions fall back to the monitor, then to 1920x1080.
func (c *Config) WindowSize(monitorWidth, monitorHeight int) (int, int) {
	w, h := c.Window.Width, c.Window.Height
	if w == 0 {
		w = monitorWidth
	}
	if h == 0 {
		h = monitorHeight
	}
	if w <= 0 {
		w = 1920
	}
	if h <= 0 {
		h = 1080
	}
	return w, h
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Window.Width < 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be >= 0")}
	}
	if c.Window.Height < 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be >= 0")}
	}
	switch c.Window.Layer {
	case LayerBackground, LayerBottom, LayerNormal, LayerTop:
	default:
		return &ValidationError{Path: "window.layer", Err: fmt.Errorf("layer must be one of: background, bottom, normal, top")}
	}
	if strings.TrimSpace(c.Hotkeys.NewWindow) != c.Hotkeys.NewWindow {
		return &ValidationError{Path: "hotkeys.new_window", Err: fmt.Errorf("hotkey must not have surrounding whitespace")}
	}
	if c.Logging.Level != "" {
		switch strings.ToLower(c.Logging.Level) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
		}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	if c.Logging.PreviewLength < 0 {
		return &ValidationError{Path: "logging.preview_length", Err: fmt.Errorf("preview_length must be >= 0")}
	}
	return nil
}
