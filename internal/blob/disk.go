package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore stores blobs as flat files under a base directory, named by ref.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the base directory if needed and returns a DiskStore.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Put streams the content to a file named by ref and reports bytes written.
func (s *DiskStore) Put(ctx context.Context, ref string, source io.Reader) (int64, error) {
	f, err := os.Create(s.path(ref))
	if err != nil {
		return 0, fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, source)
	if err != nil {
		return n, fmt.Errorf("failed to write blob: %w", err)
	}
	return n, nil
}

// Get opens the blob file for reading.
func (s *DiskStore) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the blob file.
func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	err := os.Remove(s.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *DiskStore) path(ref string) string {
	// Refs are generated UUIDs; Base strips anything path-like regardless.
	return filepath.Join(s.dir, filepath.Base(ref))
}
