package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/webshell/internal/runtimepath"
	"github.com/1broseidon/webshell/internal/shell"
)

// ErrAlreadyRunning is returned by Start when another process answers on the
// socket.
var ErrAlreadyRunning = errors.New("another webshell instance is already running")

const snapshotTimeout = 2 * time.Second

// Shell is the part of the event loop the server drives.
type Shell interface {
	shell.Sink
	Windows(ctx context.Context) ([]shell.WindowInfo, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath  string
	listener    net.Listener
	shell       Shell
	contentRoot string
	logger      *slog.Logger
	startTime   time.Time

	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server for sh. An empty socketPath selects the default
// runtime socket.
func NewServer(socketPath string, sh Shell, contentRoot string, logger *slog.Logger) (*Server, error) {
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath:  socketPath,
		shell:       sh,
		contentRoot: contentRoot,
		logger:      logger,
		startTime:   time.Now(),
	}, nil
}

func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections. A stale socket left by a
// crashed process is replaced; a live one is an error.
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, 500*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("%w (socket %s)", ErrAlreadyRunning, s.socketPath)
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}
	s.listener = listener

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection serves one request per connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	var resp *Response
	req, err := ParseRequest(data)
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	out, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}
	if _, err := conn.Write(append(out, '\n')); err != nil {
		s.logger.Warn("failed to send IPC response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return s.handleListWindows()
	case CommandSendMessage:
		return s.handleSendMessage(req.Payload)
	case CommandNewWindow:
		return s.post(shell.RequestNewWindow{})
	case CommandCloseWindow:
		return s.handleCloseWindow(req.Payload)
	case CommandSetTitle:
		return s.handleSetTitle(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) windows() ([]shell.WindowInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	return s.shell.Windows(ctx)
}

func (s *Server) handleGetStatus() *Response {
	windows, err := s.windows()
	running := err == nil
	if errors.Is(err, shell.ErrTerminated) {
		windows = nil
	} else if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read windows: %v", err))
	}

	resp, _ := NewOKResponse(StatusData{
		WindowCount:   len(windows),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		ContentRoot:   s.contentRoot,
		Running:       running,
	})
	return resp
}

func (s *Server) handleListWindows() *Response {
	windows, err := s.windows()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read windows: %v", err))
	}
	if windows == nil {
		windows = []shell.WindowInfo{}
	}
	resp, _ := NewOKResponse(WindowsData{Windows: windows})
	return resp
}

// handleSendMessage runs a content message through the dispatcher as if the
// renderer of window ID had sent it.
func (s *Server) handleSendMessage(payload json.RawMessage) *Response {
	var req SendMessagePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid send payload: %v", err))
	}
	ev, ok := shell.Dispatch(req.Message, req.ID)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("unrecognised message: %q", req.Message))
	}
	if _, isNew := ev.(shell.RequestNewWindow); !isNew {
		if resp := s.requireWindow(req.ID); resp != nil {
			return resp
		}
	}
	return s.post(ev)
}

func (s *Server) handleCloseWindow(payload json.RawMessage) *Response {
	var req CloseWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid close payload: %v", err))
	}
	if resp := s.requireWindow(req.ID); resp != nil {
		return resp
	}
	return s.post(shell.RequestCloseWindow{ID: req.ID})
}

func (s *Server) handleSetTitle(payload json.RawMessage) *Response {
	var req SetTitlePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid title payload: %v", err))
	}
	if resp := s.requireWindow(req.ID); resp != nil {
		return resp
	}
	return s.post(shell.RequestTitleChange{ID: req.ID, Title: req.Title})
}

// requireWindow returns an error response unless id is currently open. The
// window may still close before the posted event is applied; the loop treats
// that as a no-op.
func (s *Server) requireWindow(id shell.WindowID) *Response {
	windows, err := s.windows()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read windows: %v", err))
	}
	for _, w := range windows {
		if w.ID == id {
			return nil
		}
	}
	return NewErrorResponse(fmt.Sprintf("unknown window %d", id))
}

func (s *Server) post(ev shell.Event) *Response {
	if !s.shell.Post(ev) {
		return NewErrorResponse("shell is shutting down")
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
