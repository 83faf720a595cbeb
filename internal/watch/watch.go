// Package watch reports changes made to a notebook root by other programs,
// so the terminal UI can rebuild its tree without polling.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/treykane/cli-notebook/internal/logging"
	"github.com/treykane/cli-notebook/internal/pathutil"
	"github.com/treykane/cli-notebook/internal/tree"
)

// Debounce is how long further events are folded into one ChangedMsg.
const Debounce = 150 * time.Millisecond

var log = logging.New("watch")

// ChangedMsg lists the paths created, removed, or renamed under the root.
type ChangedMsg struct {
	Root  string
	Paths []string
}

// ErrorMsg carries a watcher failure.
type ErrorMsg struct {
	Err error
}

// Watcher follows every visible directory below a root.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	done    chan struct{}
	once    sync.Once
}

// New starts watching root and all of its non-hidden subdirectories.
func New(root string) (*Watcher, error) {
	root = pathutil.Normalize(root)
	if root == "" {
		return nil, errors.New("watch root cannot be empty")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		root:    root,
		done:    make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	log.Debug("watching", "root", root)
	return w, nil
}

// Root is the watched directory.
func (w *Watcher) Root() string { return w.root }

// Start returns a command that waits for the next relevant change. It must
// be re-issued after each message. The command returns nil once the watcher
// is closed.
func (w *Watcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		changed := map[string]bool{}
		var timer <-chan time.Time
		for {
			select {
			case <-w.done:
				return nil
			case <-timer:
				return ChangedMsg{Root: w.root, Paths: sortedKeys(changed)}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.handle(event) {
					continue
				}
				changed[event.Name] = true
				if timer == nil {
					timer = time.After(Debounce)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					log.Warn("watch error", "root", w.root, "error", err)
					return ErrorMsg{Err: err}
				}
			}
		}
	}
}

// handle reports whether event changes the tree, adding watches for new
// directories on the way.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if !w.visible(event.Name) {
		return false
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				log.Warn("watch new directory", "path", event.Name, "error", err)
			}
		}
	}
	return true
}

// visible reports whether path is inside the root and no element of it
// relative to the root is hidden.
func (w *Watcher) visible(path string) bool {
	if !pathutil.IsWithin(w.root, path) {
		return false
	}
	rel := pathutil.Relative(w.root, path)
	if rel == "/" {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if tree.IsHidden(part) {
			return false
		}
	}
	return true
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})
	return closeErr
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && tree.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
