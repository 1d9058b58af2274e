package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/odin"
)

// Ensure FileStore implements odin.PageStore at compile time.
var _ odin.PageStore = (*FileStore)(nil)

// FileStore implements odin.PageStore with atomic update semantics.
// The page is written to path.tmp and renamed over path.
type FileStore struct {
	path string
}

// NewFileStore creates a new FileStore writing to path. Parent directories
// are created on Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: ExpandPath(path)}
}

func (s *FileStore) tempPath() string {
	return s.path + ".tmp"
}

// Save writes html to the store.
func (s *FileStore) Save(ctx context.Context, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(s.tempPath(), []byte(html), 0644); err != nil {
		return err
	}

	if err := os.Rename(s.tempPath(), s.path); err != nil {
		_ = os.Remove(s.tempPath())
		return err
	}

	return nil
}

// Path returns the location of the stored page.
func (s *FileStore) Path() string {
	return s.path
}
