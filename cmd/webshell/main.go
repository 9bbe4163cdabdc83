package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

func init() {
	// GTK must be driven from the thread that initialised it.
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		os.Exit(runShell(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runShell(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "new-window":
		os.Exit(runNewWindow(os.Args[2:]))
	case "close":
		os.Exit(runClose(os.Args[2:]))
	case "title":
		os.Exit(runTitle(os.Args[2:]))
	case "send":
		os.Exit(runSend(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		// Flags and a bare content directory start the shell.
		os.Exit(runShell(os.Args[1:]))
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: webshell [run] [--config PATH] [--log-level LEVEL] [content-dir]")
	fmt.Fprintln(w, "       webshell <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the shell (default)")
	fmt.Fprintln(w, "  status              Show shell status")
	fmt.Fprintln(w, "  list                List open windows")
	fmt.Fprintln(w, "  new-window          Open another window")
	fmt.Fprintln(w, "  close <id>          Close a window")
	fmt.Fprintln(w, "  title <id> <text>   Set a window title")
	fmt.Fprintln(w, "  send <id> <msg>     Deliver a content message as if window <id> sent it")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive window list")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'webshell <command> --help' for command-specific options.")
}
