// notes.go implements the note and folder actions triggered from the UI.
//
// Each action calls exactly one notebook operation. The notebook performs
// the flush or detach of the open note and rebuilds its tree; afterwards the
// model only re-syncs its rows and editor from the notebook.
package app

import (
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-notebook/internal/notebook"
	"github.com/treykane/cli-notebook/internal/pathutil"
)

// welcomeNote is the text seeded into a new notebook on first run.
const welcomeNote = "# Notebook\n\n" +
	"Notes are plain files under your notebook folder.\n\n" +
	"## Keys\n\n" +
	"- Up/Down or k/j: move selection\n" +
	"- Enter: open note / expand or collapse folder\n" +
	"- n / f: new note / folder in the selected folder\n" +
	"- N / F: new note / folder at the root\n" +
	"- r: rename, d: delete (with confirmation)\n" +
	"- / or Ctrl+P: search all notes\n" +
	"- c: change notebook folder\n" +
	"- L: switch language\n" +
	"- R: refresh the tree\n" +
	"- y / Y: copy note path / content\n" +
	"- Tab: back to the editor, Esc: back to the tree\n" +
	"- Ctrl+S: save now (notes also save automatically)\n" +
	"- q: quit\n"

// syncEditor makes the editor widget mirror the notebook session. When the
// session was detached behind the model's back the editor is cleared and
// focus returns to the tree.
func (m *Model) syncEditor() {
	session := m.nb.Session()
	if session.Path() == m.editorPath {
		return
	}
	m.editorPath = session.Path()
	if session.IsOpen() {
		m.editor.SetValue(session.Content())
		return
	}
	m.editor.Reset()
	m.editor.Blur()
	if m.mode == modeEditNote {
		m.mode = modeBrowse
	}
}

// openSelected opens the note under the cursor or toggles the folder.
func (m *Model) openSelected() (tea.Model, tea.Cmd) {
	node := m.selectedNode()
	if node == nil {
		return m, nil
	}
	if node.IsDir() {
		m.toggleExpand(true)
		return m, nil
	}
	return m.openNote(node.Path)
}

// openNote loads path into the editor and focuses it.
func (m *Model) openNote(path string) (tea.Model, tea.Cmd) {
	content, err := m.nb.OpenNote(path)
	switch {
	case errors.Is(err, notebook.ErrStaleReference):
		m.syncTree(m.selectedPath())
		m.setStatus(m.loc.T("stale", "name", filepath.Base(path)))
		return m, nil
	case errors.Is(err, notebook.ErrNotNote):
		m.setStatus(m.loc.T("not_note", "name", filepath.Base(path)))
		return m, nil
	case err != nil:
		m.setStatusError(m.loc.T("error")+": "+err.Error(), err, "path", path)
		return m, nil
	}

	path = m.nb.Session().Path()
	m.editorPath = path
	m.editor.SetValue(content)
	m.expandTo(path)
	m.syncTree(path)
	m.mode = modeEditNote
	m.setStatus(m.displayRelative(path))
	return m, m.editor.Focus()
}

// focusEditor returns to the open note, if any.
func (m *Model) focusEditor() (tea.Model, tea.Cmd) {
	if !m.nb.Session().IsOpen() {
		m.setStatus(m.loc.T("no_note"))
		return m, nil
	}
	m.mode = modeEditNote
	return m, m.editor.Focus()
}

// leaveEditor moves focus back to the tree. The note stays open.
func (m *Model) leaveEditor() {
	m.editor.Blur()
	m.mode = modeBrowse
}

// pushEditorContent hands the widget text to the session.
func (m *Model) pushEditorContent() {
	if err := m.nb.EditNote(m.editor.Value()); err != nil {
		appLog.Warn("edit note", "error", err)
	}
}

// saveNote flushes the open note on request.
func (m *Model) saveNote() (tea.Model, tea.Cmd) {
	path := m.nb.Session().Path()
	if path == "" {
		m.setStatus(m.loc.T("no_note"))
		return m, nil
	}
	if err := m.nb.FlushNote(); err != nil {
		m.setStatusError(m.loc.T("error")+": "+err.Error(), err, "path", path)
		return m, nil
	}
	m.setStatus(m.loc.T("saved", "name", filepath.Base(path)))
	return m, nil
}

// startNewNote prompts for a note name in folder.
func (m *Model) startNewNote(folder string) {
	m.target = folder
	m.startInput(modeNewNote, "", InputCharLimit)
}

// startNewFolder prompts for a folder name in folder.
func (m *Model) startNewFolder(folder string) {
	m.target = folder
	m.startInput(modeNewFolder, "", InputCharLimit)
}

// startRenameSelected prompts for a new name for the selected entry.
func (m *Model) startRenameSelected() {
	node := m.selectedNode()
	if node == nil {
		return
	}
	m.target = node.Path
	m.startInput(modeRename, node.Name, InputCharLimit)
}

// startChangeRoot prompts for a new notebook folder.
func (m *Model) startChangeRoot() {
	m.target = ""
	m.startInput(modeChangeRoot, m.nb.Root(), PathCharLimit)
}

// startDeleteSelected asks for confirmation before deleting.
func (m *Model) startDeleteSelected() {
	node := m.selectedNode()
	if node == nil {
		return
	}
	m.target = node.Path
	m.mode = modeConfirmDelete
	m.setStatus(m.loc.T("confirm_delete", "name", node.Name))
}

func (m *Model) startInput(md mode, value string, limit int) {
	m.mode = md
	m.input.CharLimit = limit
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.setStatus("")
}

func (m *Model) cancelInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.mode = modeBrowse
	m.target = ""
}

// submitInput runs the action of the active prompt.
func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	md, target := m.mode, m.target
	m.cancelInput()

	switch md {
	case modeNewNote:
		m.createNote(target, value)
	case modeNewFolder:
		m.createFolder(target, value)
	case modeRename:
		m.renameEntry(target, value)
	case modeChangeRoot:
		return m.changeRoot(value)
	}
	return m, nil
}

func (m *Model) createNote(folder, name string) {
	path, err := m.nb.CreateNote(folder, name)
	if err != nil {
		m.reportMutationError(err, "create note", folder)
		return
	}
	m.expandTo(path)
	m.syncTree(path)
	m.setStatus(m.loc.T("created", "name", filepath.Base(path)))
}

func (m *Model) createFolder(folder, name string) {
	path, err := m.nb.CreateFolder(folder, name)
	if err != nil {
		m.reportMutationError(err, "create folder", folder)
		return
	}
	m.expandTo(path)
	m.syncTree(path)
	m.setStatus(m.loc.T("created", "name", filepath.Base(path)))
}

func (m *Model) renameEntry(path, name string) {
	newPath, err := m.nb.Rename(path, name)
	if err != nil {
		m.reportMutationError(err, "rename", path)
		return
	}
	expanded := make(map[string]bool, len(m.expanded))
	for p, open := range m.expanded {
		expanded[pathutil.ReplacePrefix(p, path, newPath)] = open
	}
	m.expanded = expanded
	m.syncTree(newPath)
	m.setStatus(m.loc.T("renamed", "name", filepath.Base(newPath)))
}

func (m *Model) deleteEntry(path string) {
	if err := m.nb.Delete(path); err != nil {
		m.reportMutationError(err, "delete", path)
		return
	}
	m.syncTree("")
	m.setStatus(m.loc.T("deleted", "name", filepath.Base(path)))
}

// changeRoot switches notebooks and restarts the watcher on the new root.
func (m *Model) changeRoot(path string) (tea.Model, tea.Cmd) {
	if err := m.nb.ChangeRoot(path); err != nil {
		m.setStatusError(m.loc.T("error")+": "+err.Error(), err, "path", path)
		m.syncTree("")
		return m, nil
	}
	m.expanded = map[string]bool{}
	m.cursor = 0
	m.treeOffset = 0
	m.syncTree("")
	m.setStatus(m.loc.T("new_folder_set") + ": " + m.nb.Root())

	if !m.watchEnabled {
		return m, nil
	}
	if err := m.watcher.Close(); err != nil {
		appLog.Warn("close watcher", "error", err)
	}
	m.watcher = m.startWatcher(m.nb.Root())
	return m, m.watcher.Start()
}

// reportMutationError shows a failed explicit action. The notebook already
// rebuilt its tree, so the rows are re-synced either way.
func (m *Model) reportMutationError(err error, op, path string) {
	m.syncTree(m.selectedPath())
	if errors.Is(err, notebook.ErrStaleReference) {
		m.setStatus(m.loc.T("stale", "name", filepath.Base(path)))
		return
	}
	m.setStatusError(m.loc.T("error")+": "+err.Error(), err, "op", op, "path", path)
}

// displayRelative shows path relative to the root.
func (m *Model) displayRelative(path string) string {
	rel, err := filepath.Rel(m.nb.Root(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
