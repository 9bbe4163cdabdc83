package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/webshell/internal/shell"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.ctl.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		out.Windows = append(out.Windows, WindowInfo{
			ID:      uint64(w.ID),
			Title:   w.Title,
			Created: w.Created,
		})
	}
	out.Count = len(out.Windows)
	return nil, out, nil
}

func (s *Server) handleNewWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ NewWindowInput) (*mcpsdk.CallToolResult, AckOutput, error) {
	if err := s.ctl.NewWindow(); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{Accepted: true}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseWindowInput) (*mcpsdk.CallToolResult, AckOutput, error) {
	if args.ID == 0 {
		return nil, AckOutput{}, fmt.Errorf("id is required")
	}
	if err := s.ctl.CloseWindow(shell.WindowID(args.ID)); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{Accepted: true}, nil
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, AckOutput, error) {
	if args.ID == 0 {
		return nil, AckOutput{}, fmt.Errorf("id is required")
	}
	if err := s.ctl.SetTitle(shell.WindowID(args.ID), args.Title); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{Accepted: true}, nil
}

func (s *Server) handleSendMessage(_ context.Context, _ *mcpsdk.CallToolRequest, args SendMessageInput) (*mcpsdk.CallToolResult, AckOutput, error) {
	if _, ok := shell.Dispatch(args.Message, shell.WindowID(args.ID)); !ok {
		return nil, AckOutput{}, fmt.Errorf("unrecognised message %q: expected new-window, close or change-title:<title>", args.Message)
	}
	if err := s.ctl.SendMessage(shell.WindowID(args.ID), args.Message); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{Accepted: true}, nil
}
