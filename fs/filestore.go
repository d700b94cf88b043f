// Package fs provides file-based output for rendered sitemaps.
package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Ensure FileStore can receive rendered output at compile time.
var _ io.Writer = (*FileStore)(nil)

// FileStore writes a rendered sitemap with atomic update semantics.
// Output goes to path.tmp and replaces path on Commit, so readers never see
// a partially written sitemap.
type FileStore struct {
	path string
	tmp  *os.File
}

// NewFileStore creates a new FileStore for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) tempPath() string {
	return s.path + ".tmp"
}

// Write appends p to the temporary file, creating it and its parent
// directories on first use.
func (s *FileStore) Write(p []byte) (int, error) {
	if s.tmp == nil {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return 0, err
		}
		f, err := os.Create(s.tempPath())
		if err != nil {
			return 0, err
		}
		s.tmp = f
	}
	return s.tmp.Write(p)
}

// Commit replaces the final file with the temporary one. Committing without
// any write produces an empty file.
func (s *FileStore) Commit() error {
	if s.tmp == nil {
		if _, err := s.Write(nil); err != nil {
			return err
		}
	}

	if err := s.tmp.Sync(); err != nil {
		s.tmp.Close()
		return err
	}
	if err := s.tmp.Close(); err != nil {
		return err
	}
	s.tmp = nil

	// Atomically rename temp to final
	return os.Rename(s.tempPath(), s.path)
}

// Abort discards the temporary file and leaves the final file untouched.
func (s *FileStore) Abort() error {
	if s.tmp != nil {
		s.tmp.Close()
		s.tmp = nil
	}
	if err := os.Remove(s.tempPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
