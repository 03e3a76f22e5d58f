package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBlobStore persists each sealed blob as its own file, one file per
// store name, under dir.
type FileBlobStore struct{ dir string }

// NewFileBlobStore creates dir (if absent) and returns a FileBlobStore
// rooted there.
func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &FileBlobStore{dir: dir}, nil
}

func (f *FileBlobStore) path(name string) string {
	return filepath.Join(f.dir, name+".tresor")
}

func (f *FileBlobStore) Put(_ context.Context, name string, blob []byte) error {
	return os.WriteFile(f.path(name), blob, 0o600)
}

func (f *FileBlobStore) Get(_ context.Context, name string) ([]byte, error) {
	b, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return b, err
}

func (f *FileBlobStore) Delete(_ context.Context, name string) error {
	err := os.Remove(f.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
