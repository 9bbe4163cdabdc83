// Package content resolves the directory a shell serves its pages from.
package content

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName is used under the working directory when no content
	// root is configured.
	DefaultDirName = "src"
	// IndexFile is loaded into every new window.
	IndexFile = "index.html"
)

var (
	ErrNotDirectory = errors.New("content root is not a directory")
	ErrMissingIndex = errors.New("content root has no " + IndexFile)
)

// Resolve returns the absolute, symlink-free content root. An empty dir
// selects DefaultDirName under the current working directory.
func Resolve(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = filepath.Join(cwd, DefaultDirName)
	}

	abs, err := filepath.Abs(expandHome(dir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", abs, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	if _, err := os.Stat(filepath.Join(root, IndexFile)); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", root, ErrMissingIndex)
		}
		return "", fmt.Errorf("failed to stat %s: %w", IndexFile, err)
	}
	return root, nil
}

// IndexURL returns the file:// URL of the index page under root.
func IndexURL(root string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(filepath.Join(root, IndexFile)),
	}
	return u.String()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
