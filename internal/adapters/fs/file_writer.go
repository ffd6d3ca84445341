package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/artspark/sparkdeploy/internal/usecase"
)

// FileWriter writes project files relative to a root directory
type FileWriter struct {
	root string
}

// NewFileWriter creates a file writer rooted at dir
func NewFileWriter(root string) *FileWriter {
	return &FileWriter{root: root}
}

// WriteFile writes content to a file
func (f *FileWriter) WriteFile(ctx context.Context, path string, content string) error {
	return os.WriteFile(f.path(path), []byte(content), 0644)
}

// FileExists checks if a file exists
func (f *FileWriter) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(f.path(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureDirectory ensures a directory exists
func (f *FileWriter) EnsureDirectory(ctx context.Context, path string) error {
	return os.MkdirAll(f.path(path), 0755)
}

func (f *FileWriter) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.root, p)
}

// Ensure the adapter implements the interface
var _ usecase.FileWriter = (*FileWriter)(nil)
