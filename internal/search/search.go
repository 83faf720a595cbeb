// Package search answers substring queries over every note below a root.
//
// There is no persistent index. Each query walks the directory tree again,
// which keeps results in step with the disk at personal-notebook scale.
package search

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/treykane/cli-notebook/internal/logging"
	"github.com/treykane/cli-notebook/internal/notestore"
	"github.com/treykane/cli-notebook/internal/tree"
)

const (
	// MaxResults caps the number of results a single query returns.
	MaxResults = 500

	// NoteExt is the extension a file needs to be searchable.
	NoteExt = ".md"
)

var log = logging.New("search")

// Result is a single matching note.
type Result struct {
	Title string
	Path  string
}

// IsNote reports whether name carries the note extension.
func IsNote(name string) bool {
	return strings.EqualFold(filepath.Ext(name), NoteExt)
}

// Search returns up to limit notes below root whose name or content contains
// query, compared case-insensitively. A blank query yields no results.
// limit <= 0 means MaxResults. Results come back in tree order.
func Search(store *notestore.Store, root, query string, limit int) []Result {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := []Result{}
	if needle == "" {
		return results
	}
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	s := &scan{store: store, needle: needle, limit: limit, results: results}
	s.walk(filepath.Clean(root))
	return s.results
}

type scan struct {
	store   *notestore.Store
	needle  string
	limit   int
	results []Result
}

func (s *scan) done() bool { return len(s.results) >= s.limit }

func (s *scan) walk(dir string) {
	infos, err := s.store.ReadDir(dir)
	if err != nil {
		log.Warn("read search directory", "path", dir, "error", err)
		return
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	for _, info := range infos {
		if s.done() {
			return
		}
		name := info.Name()
		if tree.IsHidden(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if info.IsDir() {
			s.walk(path)
			continue
		}
		if !IsNote(name) {
			continue
		}
		if s.matches(path, name) {
			s.results = append(s.results, Result{Title: name, Path: path})
		}
	}
}

func (s *scan) matches(path, name string) bool {
	if strings.Contains(strings.ToLower(name), s.needle) {
		return true
	}
	content, err := s.store.ReadText(path)
	if err != nil {
		log.Warn("read search file", "path", path, "error", err)
		return false
	}
	return strings.Contains(strings.ToLower(content), s.needle)
}
