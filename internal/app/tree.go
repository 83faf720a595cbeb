package app

import (
	"path/filepath"

	"github.com/treykane/cli-notebook/internal/tree"
)

// moveCursor changes the selection and keeps it within bounds.
func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}

	m.cursor = clamp(m.cursor+delta, 0, len(m.rows)-1)
	m.adjustTreeOffset()
}

// adjustTreeOffset scrolls the tree so the cursor remains visible.
func (m *Model) adjustTreeOffset() {
	visibleHeight := max(0, m.leftHeight-2-1)
	if visibleHeight == 0 {
		m.treeOffset = 0
		return
	}

	if m.cursor < m.treeOffset {
		m.treeOffset = m.cursor
	}
	if m.cursor >= m.treeOffset+visibleHeight {
		m.treeOffset = m.cursor - visibleHeight + 1
	}
}

// selectedNode returns the node under the cursor, or nil for an empty tree.
func (m *Model) selectedNode() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

func (m *Model) selectedPath() string {
	if node := m.selectedNode(); node != nil {
		return node.Path
	}
	return ""
}

// selectedFolder is the folder new entries go into: the selected folder, the
// folder of the selected note, or the root.
func (m *Model) selectedFolder() string {
	node := m.selectedNode()
	switch {
	case node == nil:
		return m.nb.Root()
	case node.IsDir():
		return node.Path
	default:
		return filepath.Dir(node.Path)
	}
}

// toggleExpand expands or collapses the selected folder.
func (m *Model) toggleExpand(expand bool) {
	node := m.selectedNode()
	if node == nil || !node.IsDir() {
		return
	}
	if expand {
		m.expanded[node.Path] = !m.expanded[node.Path]
	} else {
		m.expanded[node.Path] = false
	}
	m.syncTree(node.Path)
}

// expandTo opens every folder above path so it gets a row.
func (m *Model) expandTo(path string) {
	root := m.nb.Root()
	for dir := filepath.Dir(path); dir != root && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		m.expanded[dir] = true
	}
}

// refreshTree rescans the root and keeps the current selection.
func (m *Model) refreshTree() {
	m.nb.Refresh()
	m.syncTree(m.selectedPath())
}

// syncTree rebuilds the rows from the notebook's last snapshot, placing the
// cursor on keep when it is still visible, and re-syncs the editor in case
// the open note was detached.
func (m *Model) syncTree(keep string) {
	snapshot := m.nb.Tree()
	for path := range m.expanded {
		if node := snapshot.Find(path); node == nil || !node.IsDir() {
			delete(m.expanded, path)
		}
	}
	m.rows = snapshot.Flatten(m.expanded)

	if keep != "" {
		for i, row := range m.rows {
			if row.Node.Path == keep {
				m.cursor = i
				m.adjustTreeOffset()
				m.syncEditor()
				return
			}
		}
	}
	if len(m.rows) == 0 {
		m.cursor = 0
	} else {
		m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
	}
	m.adjustTreeOffset()
	m.syncEditor()
}
