package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/webshell/internal/shell"
)

const (
	ServerName    = "webshell"
	ServerVersion = "0.1.0"
)

// Controller is the control-socket surface the MCP tools drive. *ipc.Client
// implements it.
type Controller interface {
	ListWindows() ([]shell.WindowInfo, error)
	NewWindow() error
	CloseWindow(id shell.WindowID) error
	SetTitle(id shell.WindowID, title string) error
	SendMessage(id shell.WindowID, message string) error
}

// Server exposes a running webshell to MCP clients.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
}

// NewServer creates an MCP server that forwards tool calls to ctl.
func NewServer(ctl Controller) (*Server, error) {
	if ctl == nil {
		return nil, fmt.Errorf("mcp: controller is required")
	}
	s := &Server{ctl: ctl}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the open webshell windows with their IDs, titles and creation times, ordered by ID.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "new_window",
		Description: "Open one more webshell window showing the content root. The window is titled \"Window N\" where N is one more than the number of open windows.",
	}, s.handleNewWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a webshell window by ID. Closing the last window shuts the shell down.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Set the title of a webshell window by ID.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_message",
		Description: "Deliver a content message to the shell as if the given window's page had posted it (new-window, close, change-title:<title>).",
	}, s.handleSendMessage)
}
