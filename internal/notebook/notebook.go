// Package notebook ties the note store, the tree snapshot, search, and the
// editor session into the single application state that front ends drive.
//
// Every mutation follows the same order: flush or detach the open note if
// the mutation would invalidate it, perform the filesystem call, then
// rebuild the tree whether or not the call succeeded. The tree is never
// patched in place.
package notebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-notebook/internal/editor"
	"github.com/treykane/cli-notebook/internal/logging"
	"github.com/treykane/cli-notebook/internal/notestore"
	"github.com/treykane/cli-notebook/internal/pathutil"
	"github.com/treykane/cli-notebook/internal/search"
	"github.com/treykane/cli-notebook/internal/tree"
)

var (
	ErrInvalidName    = errors.New("invalid name")
	ErrNoOpenNote     = errors.New("no note is open")
	ErrNotNote        = errors.New("not a note")
	ErrStaleReference = errors.New("entry no longer exists")
	ErrOutsideRoot    = errors.New("path is outside the notebook root")
)

var log = logging.New("notebook")

// Options configures Open.
type Options struct {
	// Root is the notebook directory. It is created when missing.
	Root string
	// Store defaults to the operating system filesystem.
	Store *notestore.Store
	// SaveRoot persists a new root after ChangeRoot. Nil skips persistence.
	SaveRoot func(string) error
}

// Notebook is the application state: one root, its last tree snapshot, and
// at most one open note.
type Notebook struct {
	store    *notestore.Store
	root     string
	snapshot *tree.Node
	session  *editor.Session
	saveRoot func(string) error
}

// Open prepares a notebook rooted at opts.Root and builds its first tree.
func Open(opts Options) (*Notebook, error) {
	store := opts.Store
	if store == nil {
		store = notestore.NewOS()
	}
	root, err := cleanRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	if _, err := store.EnsureDirectory(root); err != nil {
		return nil, fmt.Errorf("prepare root: %w", err)
	}
	n := &Notebook{
		store:    store,
		root:     root,
		session:  editor.NewSession(store),
		saveRoot: opts.SaveRoot,
	}
	n.Refresh()
	log.Info("open notebook", "root", root)
	return n, nil
}

func cleanRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", errors.New("root path is required")
	}
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, strings.TrimPrefix(root[1:], "/"))
	}
	abs, err := filepath.Abs(pathutil.Normalize(root))
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Root is the current notebook directory.
func (n *Notebook) Root() string { return n.root }

// Store exposes the note store backing the notebook.
func (n *Notebook) Store() *notestore.Store { return n.store }

// Tree returns the last snapshot without rescanning.
func (n *Notebook) Tree() *tree.Node { return n.snapshot }

// Session exposes the editor session for read access.
func (n *Notebook) Session() *editor.Session { return n.session }

// Refresh rebuilds the snapshot and detaches the open note when its file is
// gone.
func (n *Notebook) Refresh() *tree.Node {
	n.snapshot = tree.Build(n.store, n.root)
	if path := n.session.Path(); path != "" && !n.store.Exists(path) {
		log.Info("open note vanished", "path", path)
		n.session.Detach()
	}
	return n.snapshot
}

// ListTree rebuilds and returns the tree.
func (n *Notebook) ListTree() *tree.Node { return n.Refresh() }

// Resolve maps a user supplied path to an absolute path inside the root.
// Relative paths are taken from the root.
func (n *Notebook) Resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return n.root, nil
	}
	path = pathutil.Normalize(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(n.root, path)
	}
	if !pathutil.IsWithin(n.root, path) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return path, nil
}

// validateName trims name and rejects anything that is not a single path
// element.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "", name == ".", name == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, filepath.Separator):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return name, nil
}

func (n *Notebook) childPath(parent, name string) (string, error) {
	dir, err := n.Resolve(parent)
	if err != nil {
		return "", err
	}
	name, err = validateName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// CreateFolder creates name under parent ("" for the root). Creating a
// folder that already exists is not an error.
func (n *Notebook) CreateFolder(parent, name string) (string, error) {
	path, err := n.childPath(parent, name)
	if err != nil {
		return "", err
	}
	defer n.Refresh()
	if n.store.IsFile(path) {
		return "", &notestore.IOError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if _, err := n.store.EnsureDirectory(path); err != nil {
		log.Error("create folder", "path", path, "error", err)
		return "", err
	}
	log.Info("create folder", "path", path)
	return path, nil
}

// CreateNote creates an empty note under parent ("" for the root), adding
// the .md extension when missing. An existing note keeps its content.
func (n *Notebook) CreateNote(parent, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed != "" && !search.IsNote(trimmed) {
		trimmed += search.NoteExt
	}
	path, err := n.childPath(parent, trimmed)
	if err != nil {
		return "", err
	}
	defer n.Refresh()
	created, err := n.store.CreateFile(path)
	if err != nil {
		log.Error("create note", "path", path, "error", err)
		return "", err
	}
	log.Info("create note", "path", path, "created", created)
	return path, nil
}

// affects reports whether a mutation of target invalidates the open note:
// the note itself or any folder above it.
func (n *Notebook) affects(target string) bool {
	open := n.session.Path()
	return open != "" && pathutil.IsWithin(target, open)
}

// Rename gives path a new name within the same folder and returns the new
// path. A note renamed without an extension keeps .md. The open note is
// flushed and then detached when the rename would move it.
func (n *Notebook) Rename(path, newName string) (string, error) {
	oldPath, err := n.existing(path)
	if err != nil {
		return "", err
	}
	if oldPath == n.root {
		return "", fmt.Errorf("%w: cannot rename the root", ErrInvalidName)
	}
	name, err := validateName(newName)
	if err != nil {
		return "", err
	}
	if n.store.IsFile(oldPath) && search.IsNote(oldPath) && filepath.Ext(name) == "" {
		name += search.NoteExt
	}
	newPath := filepath.Join(filepath.Dir(oldPath), name)
	if newPath == oldPath {
		return oldPath, nil
	}

	if n.affects(oldPath) {
		if err := n.session.Flush(); err != nil {
			log.Warn("flush before rename", "path", n.session.Path(), "error", err)
		}
		n.session.Detach()
	}

	defer n.Refresh()
	if err := n.store.Rename(oldPath, newPath); err != nil {
		log.Error("rename", "from", oldPath, "to", newPath, "error", err)
		return "", err
	}
	log.Info("rename", "from", oldPath, "to", newPath)
	return newPath, nil
}

// Delete removes a note, or a folder with everything in it. An open note at
// or below path is detached first and its unsaved text is discarded.
func (n *Notebook) Delete(path string) error {
	target, err := n.existing(path)
	if err != nil {
		return err
	}
	if target == n.root {
		return fmt.Errorf("%w: cannot delete the root", ErrInvalidName)
	}

	if n.affects(target) {
		n.session.Detach()
	}

	defer n.Refresh()
	if err := n.store.Delete(target); err != nil {
		log.Error("delete", "path", target, "error", err)
		return err
	}
	log.Info("delete", "path", target)
	return nil
}

// existing resolves path and checks it is still on disk. A vanished path
// refreshes the tree and returns ErrStaleReference.
func (n *Notebook) existing(path string) (string, error) {
	resolved, err := n.Resolve(path)
	if err != nil {
		return "", err
	}
	if !n.store.Exists(resolved) {
		log.Debug("stale reference", "path", resolved)
		n.Refresh()
		return "", fmt.Errorf("%w: %s", ErrStaleReference, resolved)
	}
	return resolved, nil
}

// OpenNote flushes the current note, loads path, and returns its content.
func (n *Notebook) OpenNote(path string) (string, error) {
	target, err := n.existing(path)
	if err != nil {
		return "", err
	}
	if !n.store.IsFile(target) || !search.IsNote(target) {
		return "", fmt.Errorf("%w: %s", ErrNotNote, target)
	}
	if err := n.session.Flush(); err != nil {
		log.Warn("flush before open", "path", n.session.Path(), "error", err)
	}
	return n.session.Load(target), nil
}

// EditNote replaces the text of the open note in memory.
func (n *Notebook) EditNote(content string) error {
	if err := n.session.Edit(content); err != nil {
		if errors.Is(err, editor.ErrNotOpen) {
			return ErrNoOpenNote
		}
		return err
	}
	return nil
}

// FlushNote writes the open note to disk. Flushing with nothing open is a
// no-op.
func (n *Notebook) FlushNote() error {
	return n.session.Flush()
}

// Search runs query against every note under the current root.
func (n *Notebook) Search(query string) []search.Result {
	return search.Search(n.store, n.root, query, search.MaxResults)
}

// ChangeRoot switches to another directory, creating it when missing. An
// open note outside the new root is flushed and detached. The new root is
// persisted before the tree is rebuilt.
func (n *Notebook) ChangeRoot(path string) error {
	root, err := cleanRoot(path)
	if err != nil {
		return err
	}
	if _, err := n.store.EnsureDirectory(root); err != nil {
		return fmt.Errorf("prepare root: %w", err)
	}

	if open := n.session.Path(); open != "" && !pathutil.IsWithin(root, open) {
		if err := n.session.Flush(); err != nil {
			log.Warn("flush before root change", "path", open, "error", err)
		}
		n.session.Detach()
	}

	previous := n.root
	n.root = root
	if n.saveRoot != nil {
		if err := n.saveRoot(root); err != nil {
			log.Error("persist root", "path", root, "error", err)
			n.Refresh()
			return fmt.Errorf("save root: %w", err)
		}
	}
	n.Refresh()
	log.Info("change root", "from", previous, "to", root)
	return nil
}

// Close flushes the open note and leaves the session empty.
func (n *Notebook) Close() error {
	return n.session.Close()
}
