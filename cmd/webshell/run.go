package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/webshell/internal/actionlog"
	"github.com/1broseidon/webshell/internal/config"
	"github.com/1broseidon/webshell/internal/content"
	"github.com/1broseidon/webshell/internal/gtkui"
	"github.com/1broseidon/webshell/internal/hotkeys"
	"github.com/1broseidon/webshell/internal/ipc"
	"github.com/1broseidon/webshell/internal/shell"
	"github.com/1broseidon/webshell/internal/x11"
)

func runShell(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/webshell/config.yaml)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warning, error (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: webshell [run] [--config PATH] [--log-level LEVEL] [content-dir]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the first window on content-dir/index.html and run until the last")
		fmt.Fprintln(os.Stderr, "window closes. content-dir defaults to content_dir from the config, then ./src.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "run takes at most one content directory")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	levelName := cfg.LogLevel
	if *logLevel != "" {
		levelName = *logLevel
	}
	level, err := parseLevel(levelName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	applyDisplayEnv(cfg)

	dir := cfg.ContentDir
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}
	root, err := content.Resolve(dir)
	if err != nil {
		logger.Error("invalid content root", "error", err)
		return 1
	}
	logger.Info("Configuration loaded", "content_root", root, "layer", cfg.Window.Layer, "socket", cfg.Control.Socket)

	actions := openActionLog(cfg, logger)
	defer actions.Close()

	// X11 is optional: it only supplies monitor geometry and hotkeys.
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		logger.Warn("X11 unavailable, using fallback window size and no hotkeys", "error", err)
		conn = nil
	} else {
		defer conn.Close()
	}

	ui, err := gtkui.Init(logger)
	if err != nil {
		logger.Error("failed to initialise GTK", "error", err)
		return 1
	}

	loop := shell.New(gtkui.NewBackend(ui, logger), shell.Options{
		ContentURL: content.IndexURL(root),
		Style:      windowStyle(cfg, primaryMonitor(conn, logger)),
		Logger:     logger,
		Actions:    actions,
	})

	if conn != nil && cfg.Hotkeys.NewWindow != "" {
		h := hotkeys.NewHandler(conn, logger)
		if err := h.RegisterNewWindow(cfg.Hotkeys.NewWindow, loop); err != nil {
			logger.Warn("failed to register new-window hotkey", "keys", cfg.Hotkeys.NewWindow, "error", err)
		} else {
			logger.Info("New-window hotkey registered", "keys", cfg.Hotkeys.NewWindow)
			go conn.EventLoop()
			defer conn.Quit()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Whatever ends the loop also ends the GTK main loop.
		defer ui.Quit()
		if err := loop.Start(); err != nil {
			return err
		}
		err := loop.Run(gctx)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			logger.Info("signal received, all windows closed")
			return nil
		}
		return err
	})

	if cfg.Control.Socket {
		srv, err := ipc.NewServer("", loop, root, logger)
		if err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else if err := srv.Start(); err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else {
			g.Go(func() error {
				select {
				case <-loop.Done():
				case <-gctx.Done():
				}
				srv.Stop()
				return nil
			})
		}
	}

	ui.Main()

	if err := g.Wait(); err != nil {
		logger.Error("webshell failed", "error", err)
		return 1
	}
	logger.Info("webshell exited")
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (want debug, info, warning or error)", name)
	}
}

// applyDisplayEnv points GTK at the configured display before it initialises.
func applyDisplayEnv(cfg *config.Config) {
	if cfg.Display != "" {
		os.Setenv("DISPLAY", cfg.Display)
	}
	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}
}

func openActionLog(cfg *config.Config, logger *slog.Logger) *actionlog.Logger {
	lc := cfg.GetLoggingConfig()
	if !lc.Enabled {
		return nil
	}
	l, err := actionlog.New(actionlog.Config{
		Enabled:       lc.Enabled,
		Level:         actionlog.ParseLogLevel(lc.Level),
		FilePath:      lc.File,
		MaxSizeMB:     lc.MaxSizeMB,
		MaxFiles:      lc.MaxFiles,
		PreviewLength: lc.PreviewLength,
	})
	if err != nil {
		logger.Warn("action log disabled", "file", lc.File, "error", err)
		return nil
	}
	return l
}

func primaryMonitor(conn *x11.Connection, logger *slog.Logger) *x11.Monitor {
	if conn == nil {
		return nil
	}
	mon, err := conn.PrimaryMonitor()
	if err != nil {
		logger.Warn("failed to query monitors", "error", err)
		return nil
	}
	logger.Debug("primary monitor", "name", mon.Name, "x", mon.X, "y", mon.Y, "width", mon.Width, "height", mon.Height)
	return mon
}

// windowStyle builds the style shared by every window. A nil monitor places
// windows at the origin with the configured or fallback size.
func windowStyle(cfg *config.Config, mon *x11.Monitor) shell.Style {
	var x, y, mw, mh int
	if mon != nil {
		x, y, mw, mh = mon.X, mon.Y, mon.Width, mon.Height
	}
	w, h := cfg.WindowSize(mw, mh)
	return shell.Style{
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
		Layer:       shell.Layer(cfg.Window.Layer),
		Decorated:   cfg.Window.Decorated,
		Resizable:   cfg.Window.Resizable,
		Sticky:      cfg.Window.Sticky,
		Keyboard:    cfg.Window.Keyboard,
		Transparent: cfg.Window.Transparent,
		Devtools:    cfg.Window.Devtools,
	}
}
