// Package runtimepath locates the per-user control socket.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const (
	socketName = "webshell.sock"

	// SocketEnv overrides the socket location, e.g. to run two shells side by side.
	SocketEnv = "WEBSHELL_SOCKET"
)

// Dir returns the directory holding the control socket: $XDG_RUNTIME_DIR,
// else /run/user/<uid>, else a private /tmp/webshell-runtime-<uid>.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}
	return privateDir(fmt.Sprintf("/tmp/webshell-runtime-%d", uid), uid)
}

// SocketPath returns the control socket path.
func SocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return filepath.Abs(p)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, socketName), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// privateDir creates dir with mode 0700 and refuses one that another user
// created first in a shared /tmp.
func privateDir(dir string, uid int) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	info, err := os.Lstat(dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat runtime dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("runtime dir %s is not a directory", dir)
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok && int(st.Uid) != uid {
		return "", fmt.Errorf("runtime dir %s is owned by uid %d", dir, st.Uid)
	}
	return dir, nil
}
