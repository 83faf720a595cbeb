package app

import tea "github.com/charmbracelet/bubbletea"

// handleWindowResize updates layout dimensions after terminal resize.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.leftHeight = max(0, m.height-FooterRows)
	m.updateLayout()
	m.adjustTreeOffset()
	return m, nil
}
