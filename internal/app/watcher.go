// watcher.go reacts to changes made to the notebook by other programs.
//
// The watch package blocks on fsnotify events inside a tea.Cmd and hands the
// result back as a message, so the rebuild still happens on the update loop
// and the model stays the only mutator of notebook state.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-notebook/internal/watch"
)

// startWatcher watches root, or returns nil when watching is unavailable.
// The UI keeps working without it; R refreshes manually.
func (m *Model) startWatcher(root string) *watch.Watcher {
	w, err := watch.New(root)
	if err != nil {
		appLog.Warn("start watcher", "root", root, "error", err)
		return nil
	}
	return w
}

// handleWatchChanged rebuilds the tree after an external change. Messages
// from a watcher that was replaced by a root change are dropped, and the rows
// are left alone when the rebuilt tree has the same shape as before.
func (m *Model) handleWatchChanged(msg watch.ChangedMsg) (tea.Model, tea.Cmd) {
	if m.watcher == nil || msg.Root != m.watcher.Root() {
		return m, nil
	}
	wasOpen := m.nb.Session().Path()
	before := m.nb.Tree().Digest()
	m.nb.Refresh()
	if m.nb.Tree().Digest() == before {
		appLog.Debug("external change left tree unchanged", "paths", len(msg.Paths))
		return m, m.watcher.Start()
	}
	appLog.Debug("external change", "paths", len(msg.Paths))
	m.syncTree(m.selectedPath())
	if wasOpen != "" && !m.nb.Session().IsOpen() {
		m.setStatus(m.loc.T("refreshed"))
	}
	return m, m.watcher.Start()
}

func (m *Model) handleWatchError(msg watch.ErrorMsg) (tea.Model, tea.Cmd) {
	appLog.Warn("watcher error", "error", msg.Err)
	return m, m.watcher.Start()
}
