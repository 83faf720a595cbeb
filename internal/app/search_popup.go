package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// openSearchPopup shows the search popup with an empty query.
func (m *Model) openSearchPopup() tea.Cmd {
	m.mode = modeSearch
	m.search.SetValue("")
	m.searchResults = nil
	m.searchCursor = 0
	m.setStatus("")
	return m.search.Focus()
}

func (m *Model) closeSearchPopup() {
	m.search.Blur()
	m.mode = modeBrowse
}

// updateSearchResults re-scans the notebook for the current query.
func (m *Model) updateSearchResults() {
	m.searchResults = m.nb.Search(m.search.Value())
	m.searchCursor = clamp(m.searchCursor, 0, max(0, len(m.searchResults)-1))
}

// moveSearchCursor moves the search result cursor by the given delta.
func (m *Model) moveSearchCursor(delta int) (tea.Model, tea.Cmd) {
	if len(m.searchResults) > 0 {
		m.searchCursor = clamp(m.searchCursor+delta, 0, len(m.searchResults)-1)
	}
	return m, nil
}

// selectSearchResult opens the highlighted result. A result whose file has
// vanished refreshes the tree and the result list instead.
func (m *Model) selectSearchResult() (tea.Model, tea.Cmd) {
	if len(m.searchResults) == 0 {
		return m, nil
	}
	result := m.searchResults[m.searchCursor]
	if !m.nb.Store().Exists(result.Path) {
		m.refreshTree()
		m.updateSearchResults()
		m.setStatus(m.loc.T("stale", "name", filepath.Base(result.Path)))
		return m, nil
	}
	m.closeSearchPopup()
	return m.openNote(result.Path)
}
