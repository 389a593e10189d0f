package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each document as a file in one directory
type FileStore struct {
	basePath string
}

// NewFileStore creates a store rooted at basePath, the directory is created on first write
func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

// FilePath returns the on-disk path for a document
func (s *FileStore) FilePath(name string) string {
	return filepath.Join(s.basePath, name)
}

// Read returns the document contents, ErrNotFound when the file is absent
func (s *FileStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.FilePath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the document through a temp file and rename so a crash never leaves it truncated
func (s *FileStore) Write(name string, data []byte) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.basePath, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.FilePath(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
