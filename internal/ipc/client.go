package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/webshell/internal/runtimepath"
	"github.com/1broseidon/webshell/internal/shell"
)

// Client handles IPC communication with a running shell
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default runtime socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to webshell: %w (is webshell running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if _, err := conn.Write(append(reqData, '\n')); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("webshell error: %s", resp.Error)
	}
	return &resp, nil
}

func (c *Client) command(cmd CommandType, payload interface{}) (*Response, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	return c.sendRequest(req)
}

// GetStatus retrieves shell status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.command(CommandGetStatus, nil)
	if err != nil {
		return nil, err
	}
	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// ListWindows returns the open windows ordered by ID.
func (c *Client) ListWindows() ([]shell.WindowInfo, error) {
	resp, err := c.command(CommandListWindows, nil)
	if err != nil {
		return nil, err
	}
	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return data.Windows, nil
}

// SendMessage delivers message as if window id's content had posted it.
func (c *Client) SendMessage(id shell.WindowID, message string) error {
	_, err := c.command(CommandSendMessage, SendMessagePayload{ID: id, Message: message})
	return err
}

func (c *Client) NewWindow() error {
	_, err := c.command(CommandNewWindow, nil)
	return err
}

func (c *Client) CloseWindow(id shell.WindowID) error {
	_, err := c.command(CommandCloseWindow, CloseWindowPayload{ID: id})
	return err
}

func (c *Client) SetTitle(id shell.WindowID, title string) error {
	_, err := c.command(CommandSetTitle, SetTitlePayload{ID: id, Title: title})
	return err
}

// Ping checks if the shell is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
