// Package tree builds the in-memory snapshot of a notebook root.
//
// A snapshot is rebuilt from scratch after every mutation instead of being
// patched in place. Each Node is decided once at build time to be either a
// Directory (with sorted children) or a File, so consumers never re-query the
// filesystem to learn what a node is.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/treykane/cli-notebook/internal/logging"
	"github.com/treykane/cli-notebook/internal/notestore"
	"github.com/treykane/cli-notebook/internal/pathutil"
)

var log = logging.New("tree")

// Kind tags a node as a directory or a file.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// reservedNames are OS metadata files that never show up in the tree.
var reservedNames = map[string]bool{
	"thumbs.db":   true,
	"desktop.ini": true,
}

// IsHidden reports whether an entry name is excluded from snapshots and
// search: dotfiles and reserved OS metadata files.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") || reservedNames[strings.ToLower(name)]
}

// Node is one entry of a snapshot. Children is only populated for
// directories and is sorted by Name.
type Node struct {
	Name     string
	Path     string
	Kind     Kind
	Children []*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n != nil && n.Kind == Directory }

// Build scans root depth-first and returns a fresh snapshot. The root is
// created when missing. A directory below the root that cannot be listed
// (for example one removed by another process mid-walk) is omitted together
// with its subtree.
func Build(store *notestore.Store, root string) *Node {
	root = filepath.Clean(root)
	node := &Node{
		Name: filepath.Base(root),
		Path: root,
		Kind: Directory,
	}
	infos, err := store.ReadDir(root)
	if err != nil {
		if _, mkErr := store.EnsureDirectory(root); mkErr == nil {
			infos, err = store.ReadDir(root)
		}
	}
	if err != nil {
		log.Warn("read tree root", "path", root, "error", err)
		return node
	}
	node.Children = buildChildren(store, root, infos)
	return node
}

func buildChildren(store *notestore.Store, dir string, infos []os.FileInfo) []*Node {
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	children := make([]*Node, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if IsHidden(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if !info.IsDir() {
			children = append(children, &Node{Name: name, Path: path, Kind: File})
			continue
		}
		sub, err := store.ReadDir(path)
		if err != nil {
			log.Warn("read tree directory", "path", path, "error", err)
			continue
		}
		children = append(children, &Node{
			Name:     name,
			Path:     path,
			Kind:     Directory,
			Children: buildChildren(store, path, sub),
		})
	}
	return children
}

// Walk visits n and its descendants in display order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the node whose Path equals path after cleaning, or nil.
func (n *Node) Find(path string) *Node {
	if n == nil || path == "" {
		return nil
	}
	path = filepath.Clean(path)
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Path == path {
			found = node
			return false
		}
		return node.Kind == Directory && pathutil.IsWithin(node.Path, path)
	})
	return found
}

// Count returns the number of directories and files below n.
func (n *Node) Count() (dirs, files int) {
	n.Walk(func(node *Node) bool {
		if node == n {
			return true
		}
		if node.Kind == Directory {
			dirs++
		} else {
			files++
		}
		return true
	})
	return dirs, files
}

// Digest fingerprints the structure of the snapshot: names, order, and
// kinds. Two snapshots of an unchanged directory have equal digests.
func (n *Node) Digest() uint64 {
	h := xxhash.New()
	n.Walk(func(node *Node) bool {
		rel, err := filepath.Rel(n.Path, node.Path)
		if err != nil {
			rel = node.Path
		}
		_, _ = h.WriteString(node.Kind.String())
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(filepath.ToSlash(rel))
		_, _ = h.WriteString("\n")
		return true
	})
	return h.Sum64()
}

// Row is a flattened, display-ready view of a node.
type Row struct {
	Node  *Node
	Depth int
}

// Flatten lists the descendants of n depth-first, descending only into
// directories marked in expanded. The root itself is not included.
func (n *Node) Flatten(expanded map[string]bool) []Row {
	rows := []Row{}
	if n == nil {
		return rows
	}
	var walk func(children []*Node, depth int)
	walk = func(children []*Node, depth int) {
		for _, child := range children {
			rows = append(rows, Row{Node: child, Depth: depth})
			if child.Kind == Directory && expanded[child.Path] {
				walk(child.Children, depth+1)
			}
		}
	}
	walk(n.Children, 0)
	return rows
}
