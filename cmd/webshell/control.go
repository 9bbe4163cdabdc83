package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/webshell/internal/ipc"
	"github.com/1broseidon/webshell/internal/shell"
)

// newFlagSet returns a flag set whose usage prints lines to stderr.
func newFlagSet(name string, usage ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		for _, line := range usage {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	return fs
}

// parseArgs parses args and checks the positional count. It returns an exit
// code and false when the command should stop.
func parseArgs(fs *flag.FlagSet, args []string, nargs int) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	if nargs >= 0 && fs.NArg() != nargs {
		if nargs == 0 {
			fmt.Fprintf(os.Stderr, "%s takes no arguments\n", fs.Name())
		} else {
			fmt.Fprintf(os.Stderr, "%s requires %d argument(s)\n", fs.Name(), nargs)
		}
		fs.Usage()
		return 2, false
	}
	return 0, true
}

func parseWindowID(s string) (shell.WindowID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return shell.WindowID(n), nil
}

func runStatus(args []string) int {
	fs := newFlagSet("status",
		"Usage: webshell status",
		"",
		"Show shell status via the control socket.")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("running:        %v\n", status.Running)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("content_root:   %s\n", status.ContentRoot)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runList(args []string) int {
	fs := newFlagSet("list",
		"Usage: webshell list [--json]",
		"",
		"List open windows.")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	windows, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch {
	case *asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case term.IsTerminal(int(os.Stdout.Fd())):
		fmt.Println(renderWindowTable(windows, time.Now()))
	default:
		writeWindowsPlain(os.Stdout, windows)
	}
	return 0
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderWindowTable formats windows as aligned, styled columns.
func renderWindowTable(windows []shell.WindowInfo, now time.Time) string {
	if len(windows) == 0 {
		return dimStyle.Render("no windows")
	}

	idWidth, titleWidth := len("ID"), len("TITLE")
	for _, w := range windows {
		idWidth = max(idWidth, len(w.ID.String()))
		titleWidth = max(titleWidth, lipgloss.Width(w.Title))
	}
	idCol := lipgloss.NewStyle().Width(idWidth + 2)
	titleCol := lipgloss.NewStyle().Width(titleWidth + 2)

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Inherit(idCol).Render("ID"),
		headerStyle.Inherit(titleCol).Render("TITLE"),
		headerStyle.Render("AGE"),
	)}
	for _, w := range windows {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			idCol.Render(w.ID.String()),
			titleCol.Render(w.Title),
			dimStyle.Render(formatAge(now.Sub(w.Created))),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func writeWindowsPlain(w io.Writer, windows []shell.WindowInfo) {
	for _, win := range windows {
		fmt.Fprintf(w, "%d\t%s\t%s\n", win.ID, win.Title, win.Created.Format(time.RFC3339))
	}
}

func formatAge(d time.Duration) string {
	switch {
	case d < 0:
		return "0s"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

func runNewWindow(args []string) int {
	fs := newFlagSet("new-window",
		"Usage: webshell new-window",
		"",
		"Open another window on the shell's content root.")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}
	if err := ipc.NewClient().NewWindow(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runClose(args []string) int {
	fs := newFlagSet("close",
		"Usage: webshell close <id>",
		"",
		"Close a window. The shell exits when its last window closes.")
	if code, ok := parseArgs(fs, args, 1); !ok {
		return code
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := ipc.NewClient().CloseWindow(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTitle(args []string) int {
	fs := newFlagSet("title",
		"Usage: webshell title <id> <text>",
		"",
		"Set the title of a window. Remaining arguments are joined with spaces.")
	if code, ok := parseArgs(fs, args, -1); !ok {
		return code
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "title requires <id> and <text>")
		fs.Usage()
		return 2
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	title := strings.Join(fs.Args()[1:], " ")
	if err := ipc.NewClient().SetTitle(id, title); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSend(args []string) int {
	fs := newFlagSet("send",
		"Usage: webshell send <id> <message>",
		"",
		"Deliver a content message as if window <id> had posted it.",
		"Messages: new-window, close, change-title:<text>")
	if code, ok := parseArgs(fs, args, 2); !ok {
		return code
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := ipc.NewClient().SendMessage(id, fs.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
