package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// handleBrowseKey routes key presses while the tree has focus.
func (m *Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g", "home":
		m.moveCursor(-len(m.rows))
	case "G", "end":
		m.moveCursor(len(m.rows))
	case "enter", "right", "l":
		return m.openSelected()
	case "left", "h":
		m.toggleExpand(false)
	case "tab":
		return m.focusEditor()
	case "/", "ctrl+p":
		return m, m.openSearchPopup()
	case "n":
		m.startNewNote(m.selectedFolder())
	case "N":
		m.startNewNote(m.nb.Root())
	case "f":
		m.startNewFolder(m.selectedFolder())
	case "F":
		m.startNewFolder(m.nb.Root())
	case "r":
		m.startRenameSelected()
	case "d", "delete":
		m.startDeleteSelected()
	case "c":
		m.startChangeRoot()
	case "L":
		m.toggleLanguage()
	case "R", "ctrl+r":
		m.refreshTree()
		m.setStatus(m.loc.T("refreshed"))
	case "y":
		m.copyNotePath()
	case "Y":
		m.copyNoteContent()
	case "ctrl+s":
		return m.saveNote()
	}
	if m.mode.isInputMode() {
		return m, textinput.Blink
	}
	return m, nil
}

// handleEditNoteKey processes keypresses while the editor has focus. Every
// change to the text is handed to the session so autosave can flush it.
func (m *Model) handleEditNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.saveNote()
	case "esc", "tab":
		m.leaveEditor()
		return m, nil
	case "ctrl+c":
		m.shutdown()
		return m, tea.Quit
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if before != m.editor.Value() {
		m.pushEditorContent()
	}
	return m, cmd
}

// handleInputKey processes keypresses in the single-line prompts.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitInput()
	case "esc":
		m.cancelInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmDeleteKey accepts y, or o for the French prompt. Anything else
// cancels.
func (m *Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.target
	m.target = ""
	m.mode = modeBrowse
	switch strings.ToLower(msg.String()) {
	case "y", "o":
		m.deleteEntry(target)
	default:
		m.setStatus("")
	}
	return m, nil
}

// handleSearchKey routes key presses while the search popup is active.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearchPopup()
		return m, nil
	case "up", "ctrl+p":
		return m.moveSearchCursor(-1)
	case "down", "ctrl+n":
		return m.moveSearchCursor(1)
	case "enter":
		return m.selectSearchResult()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if before != m.search.Value() {
		m.searchCursor = 0
		m.updateSearchResults()
	}
	return m, cmd
}

// toggleLanguage switches between the supported languages and persists the
// choice.
func (m *Model) toggleLanguage() {
	m.loc.Toggle()
	m.applyLanguage()
	if m.saveLocale != nil {
		if err := m.saveLocale(m.loc.Lang()); err != nil {
			m.setStatusError(m.loc.T("error")+": "+err.Error(), err, "language", m.loc.Lang())
			return
		}
	}
	m.setStatus(m.loc.Label())
}
