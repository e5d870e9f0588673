package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores each document as a file in a single directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, NewStoreError("directory", OpOpen, "data directory is empty", ErrInvalidDocumentName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewStoreError(dir, OpOpen, "failed to create data directory", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory documents are stored in.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Load reads the named document.
func (b *FileBackend) Load(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStoreError(name, OpLoad, "failed to read file", err)
	}
	return data, nil
}

// Save writes data to a temporary file in the same directory, syncs it and
// renames it over the document, so readers see either the old or the new
// version in full.
func (b *FileBackend) Save(ctx context.Context, name string, data []byte) (err error) {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return NewStoreError(name, OpSave, "failed to create temporary file", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return NewStoreError(name, OpSave, "failed to write temporary file", fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return NewStoreError(name, OpSave, "failed to sync temporary file", err)
	}
	if err = tmp.Close(); err != nil {
		return NewStoreError(name, OpSave, "failed to close temporary file", err)
	}
	if err = os.Rename(tmpPath, filepath.Join(b.dir, name)); err != nil {
		return NewStoreError(name, OpSave, "failed to replace document", err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (b *FileBackend) Close() error {
	return nil
}
