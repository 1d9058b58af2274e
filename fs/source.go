// Package fs provides file-based acquisition and caching of the table of
// hardware.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/odin"
)

// ExpandPath trims surrounding whitespace and expands a leading "~" to the
// user's home directory. Other paths are returned unchanged.
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Ensure FileSource implements odin.Source at compile time.
var _ odin.Source = (*FileSource)(nil)

// FileSource loads the table of hardware from a local HTML file.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource reading path. A leading "~" is expanded.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: ExpandPath(path)}
}

// Load reads the file. A missing file is reported as ENOTFOUND so callers can
// fall back to another source; other read failures are EUNAVAILABLE.
func (s *FileSource) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", odin.Errorf(odin.ENOTFOUND, "file %s not found", s.path)
	} else if err != nil {
		return "", odin.Errorf(odin.EUNAVAILABLE, "read %s: %v", s.path, err)
	}
	return string(b), nil
}

// Origin returns the path of the file.
func (s *FileSource) Origin() string {
	return s.path
}
