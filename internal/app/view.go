package app

import (
	"github.com/charmbracelet/lipgloss"
)

// View draws the full UI (left tree + right pane + footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	leftPane := m.renderTree(layout.LeftWidth, layout.ContentHeight)
	rightPane := m.renderRight(layout.RightWidth, layout.ContentHeight)
	row := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	if m.mode == modeSearch {
		row = m.renderSearchPopupOverlay(m.width, layout.ContentHeight)
	}
	row = padBlock(row, m.width, layout.ContentHeight)

	view := row + "\n" + m.renderStatus(m.width, FooterRows)
	return padBlock(view, m.width, m.height)
}
