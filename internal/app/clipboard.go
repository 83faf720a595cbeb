package app

import (
	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// copyNotePath copies the absolute path of the open note, or of the selected
// entry when no note is open.
func (m *Model) copyNotePath() {
	path := m.nb.Session().Path()
	if path == "" {
		path = m.selectedPath()
	}
	if path == "" {
		m.setStatus(m.loc.T("no_note"))
		return
	}
	if err := writeClipboard(path); err != nil {
		m.setStatusError(m.loc.T("error")+": "+err.Error(), err)
		return
	}
	m.setStatus(m.loc.T("copied_path"))
}

// copyNoteContent copies the text of the open note, unsaved edits included.
func (m *Model) copyNoteContent() {
	session := m.nb.Session()
	if !session.IsOpen() {
		m.setStatus(m.loc.T("no_note"))
		return
	}
	if err := writeClipboard(session.Content()); err != nil {
		m.setStatusError(m.loc.T("error")+": "+err.Error(), err)
		return
	}
	m.setStatus(m.loc.T("copied_content"))
}
