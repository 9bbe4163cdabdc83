package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/webshell/internal/ipc"
	"github.com/1broseidon/webshell/internal/mcp"
	"github.com/1broseidon/webshell/internal/tui"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: webshell mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'webshell mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := newFlagSet("mcp serve",
		"Usage: webshell mcp serve",
		"",
		"Start the MCP server on stdio. Tools act on the running shell through",
		"its control socket, so start 'webshell' first.")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	// stdout carries the protocol; diagnostics go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	server, err := mcp.NewServer(ipc.NewClient())
	if err != nil {
		logger.Error("failed to create MCP server", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("MCP server error", "error", err)
		return 1
	}
	return 0
}

func runTUI(args []string) int {
	fs := newFlagSet("tui",
		"Usage: webshell tui",
		"",
		"Interactive list of the running shell's windows.",
		"",
		"Keybindings:",
		"  j/k, ↑/↓  Navigate windows",
		"  n         Open a new window",
		"  d, x      Close selected window",
		"  r         Rename selected window",
		"  g         Refresh now",
		"  q, Esc    Quit")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	if err := tui.New(ipc.NewClient()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
