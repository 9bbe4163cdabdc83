package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/webshell/internal/config"
	"github.com/1broseidon/webshell/internal/shell"
	"github.com/1broseidon/webshell/internal/x11"
)

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    shell.WindowID
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: " 42 ", want: 42},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseWindowID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWindowID(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWindowID(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseWindowID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWindowStyle(t *testing.T) {
	cfg := config.DefaultConfig()

	t.Run("monitor geometry", func(t *testing.T) {
		mon := &x11.Monitor{X: 1920, Y: 0, Width: 2560, Height: 1440}
		got := windowStyle(cfg, mon)
		if got.X != 1920 || got.Y != 0 || got.Width != 2560 || got.Height != 1440 {
			t.Fatalf("geometry = %d,%d %dx%d", got.X, got.Y, got.Width, got.Height)
		}
		if got.Layer != shell.Layer(cfg.Window.Layer) {
			t.Errorf("Layer = %q, want %q", got.Layer, cfg.Window.Layer)
		}
		if got.Decorated != cfg.Window.Decorated || got.Devtools != cfg.Window.Devtools {
			t.Errorf("flags not passed through: %+v", got)
		}
	})

	t.Run("no monitor", func(t *testing.T) {
		got := windowStyle(cfg, nil)
		if got.X != 0 || got.Y != 0 || got.Width != 1920 || got.Height != 1080 {
			t.Fatalf("geometry = %d,%d %dx%d, want fallback", got.X, got.Y, got.Width, got.Height)
		}
	})

	t.Run("configured size wins", func(t *testing.T) {
		c := config.DefaultConfig()
		c.Window.Width = 800
		c.Window.Height = 600
		got := windowStyle(c, &x11.Monitor{Width: 2560, Height: 1440})
		if got.Width != 800 || got.Height != 600 {
			t.Fatalf("size = %dx%d, want 800x600", got.Width, got.Height)
		}
	})
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: -time.Second, want: "0s"},
		{d: 42 * time.Second, want: "42s"},
		{d: 5*time.Minute + 10*time.Second, want: "5m"},
		{d: 2*time.Hour + 7*time.Minute, want: "2h07m"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWindowListing(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	windows := []shell.WindowInfo{
		{ID: 1, Title: "Window 1", Created: created},
		{ID: 12, Title: "docs", Created: created.Add(time.Minute)},
	}

	var buf bytes.Buffer
	writeWindowsPlain(&buf, windows)
	want := "1\tWindow 1\t2024-05-01T10:00:00Z\n12\tdocs\t2024-05-01T10:01:00Z\n"
	if buf.String() != want {
		t.Errorf("plain output = %q, want %q", buf.String(), want)
	}

	table := renderWindowTable(windows, created.Add(2*time.Minute))
	for _, s := range []string{"ID", "TITLE", "Window 1", "docs", "2m", "1m"} {
		if !strings.Contains(table, s) {
			t.Errorf("table missing %q:\n%s", s, table)
		}
	}

	if got := renderWindowTable(nil, created); !strings.Contains(got, "no windows") {
		t.Errorf("empty table = %q", got)
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{src: config.Source{Kind: config.SourceDefault}, want: "default"},
		{src: config.Source{Kind: config.SourceDefault, Name: "window.layer"}, want: "default:window.layer"},
		{src: config.Source{Kind: config.SourceFile}, want: "file"},
		{src: config.Source{Kind: config.SourceFile, File: "/c.yaml"}, want: "file:/c.yaml"},
		{src: config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, want: "file:/c.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
