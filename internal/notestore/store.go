// Package notestore implements the filesystem side of the notebook: creating
// directories, listing entries, reading and writing note text, and the
// explicit create/rename/delete actions.
//
// The store keeps no in-memory state. "Missing" conditions that are normal for
// a notebook (a note that was never saved, a folder that does not exist yet)
// are reported as empty values, while failures of explicit actions come back
// as *IOError so they can be surfaced to the user.
package notestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/treykane/cli-notebook/internal/logging"
)

// File system permissions
const (
	// DirPermission is the permission mode for newly created directories
	DirPermission = 0o755

	// FilePermission is the permission mode for newly created files
	FilePermission = 0o644
)

var log = logging.New("store")

// IOError describes a failed filesystem action on a single path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store performs note and folder operations on an afero filesystem.
type Store struct {
	fs afero.Fs
}

// New returns a store backed by fsys.
func New(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// NewOS returns a store backed by the operating system filesystem.
func NewOS() *Store {
	return New(afero.NewOsFs())
}

// Fs exposes the underlying filesystem.
func (s *Store) Fs() afero.Fs { return s.fs }

// EnsureDirectory creates path and any missing ancestors.
func (s *Store) EnsureDirectory(path string) (string, error) {
	if err := s.fs.MkdirAll(path, DirPermission); err != nil {
		return path, &IOError{Op: "mkdir", Path: path, Err: err}
	}
	return path, nil
}

// ListEntries returns the names of the immediate children of a directory,
// creating the directory first when it is missing. On failure the returned
// slice is empty (never nil) so callers can range over it unconditionally.
func (s *Store) ListEntries(path string) ([]string, error) {
	var infos []fs.FileInfo
	_, err := s.EnsureDirectory(path)
	if err == nil {
		infos, err = s.ReadDir(path)
	}
	names := make([]string, 0, len(infos))
	if err != nil {
		log.Warn("list entries", "path", path, "error", err)
		return names, err
	}
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

// ReadDir returns the entries of an existing directory with their metadata,
// sorted by name. Unlike ListEntries it never creates the directory.
func (s *Store) ReadDir(path string) ([]fs.FileInfo, error) {
	infos, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return nil, &IOError{Op: "readdir", Path: path, Err: err}
	}
	return infos, nil
}

// Stat returns file info for path.
func (s *Store) Stat(path string) (fs.FileInfo, error) {
	return s.fs.Stat(path)
}

// Exists reports whether path exists. Errors other than "not found" count as
// existing.
func (s *Store) Exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether path exists and is a directory.
func (s *Store) IsDir(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func (s *Store) IsFile(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadText returns the content of a note. A note that does not exist reads
// as empty without error; any other failure returns the error alongside the
// empty string and the caller decides whether it matters.
func (s *Store) ReadText(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// WriteText overwrites a note, creating parent directories when needed.
func (s *Store) WriteText(path, content string) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), DirPermission); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), FilePermission); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// CreateFile creates an empty file unless one already exists. created is
// false when the file was already there; its content is left untouched.
func (s *Store) CreateFile(path string) (created bool, err error) {
	if s.Exists(path) {
		if s.IsDir(path) {
			return false, &IOError{Op: "create", Path: path, Err: fs.ErrExist}
		}
		return false, nil
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), DirPermission); err != nil {
		return false, &IOError{Op: "create", Path: path, Err: err}
	}
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FilePermission)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, &IOError{Op: "create", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return true, &IOError{Op: "create", Path: path, Err: err}
	}
	return true, nil
}

// Rename moves a file or directory. It fails when the source is missing or
// the destination already exists. No editor invalidation happens here.
func (s *Store) Rename(oldPath, newPath string) error {
	if _, err := s.fs.Stat(oldPath); err != nil {
		return &IOError{Op: "rename", Path: oldPath, Err: err}
	}
	if _, err := s.fs.Stat(newPath); err == nil {
		return &IOError{Op: "rename", Path: newPath, Err: fs.ErrExist}
	}
	if err := s.fs.Rename(oldPath, newPath); err != nil {
		return &IOError{Op: "rename", Path: oldPath, Err: err}
	}
	return nil
}

// Delete removes a file, or a directory together with everything under it.
func (s *Store) Delete(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return &IOError{Op: "delete", Path: path, Err: err}
	}
	if info.IsDir() {
		err = s.fs.RemoveAll(path)
	} else {
		err = s.fs.Remove(path)
	}
	if err != nil {
		return &IOError{Op: "delete", Path: path, Err: err}
	}
	return nil
}
