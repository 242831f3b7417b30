package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage keeps uploads on the local filesystem under a base directory.
// The submission endpoint writes there and the worker reads and removes.
type LocalStorage struct {
	BaseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", baseDir, err)
	}
	return &LocalStorage{BaseDir: baseDir}, nil
}

func (s *LocalStorage) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	path := s.resolve(sourcePath)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}

// Save spills the reader to a uniquely named file and returns the path
// relative to the base directory. The original name only contributes its
// extension; everything else comes from a fresh uuid.
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	_ = ctx

	stored := uuid.NewString() + filepath.Ext(filepath.Base(name))
	path := filepath.Join(s.BaseDir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file %s: %w", path, err)
	}
	return stored, nil
}

func (s *LocalStorage) Remove(ctx context.Context, sourcePath string) error {
	_ = ctx

	if err := os.Remove(s.resolve(sourcePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", sourcePath, err)
	}
	return nil
}

func (s *LocalStorage) resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(s.BaseDir, sourcePath)
}
