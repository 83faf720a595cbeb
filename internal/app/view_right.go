package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderRight draws the editor pane, or the active prompt.
func (m *Model) renderRight(width, height int) string {
	style, headerStyle := previewPane, previewHeader
	if m.mode == modeEditNote {
		style, headerStyle = editPane, editHeader
	}

	innerWidth := max(0, width-style.GetHorizontalFrameSize())
	innerHeight := max(0, height-style.GetVerticalFrameSize())
	contentHeight := max(0, innerHeight-1)

	var content string
	switch {
	case m.mode.isInputMode():
		m.input.Width = max(0, innerWidth-2)
		title, location := m.promptMeta()
		content = strings.Join([]string{
			titleStyle.Render(title),
			mutedStyle.Render(location),
			"",
			m.input.View(),
		}, "\n")
	case !m.nb.Session().IsOpen():
		content = mutedStyle.Render(m.loc.T("no_note"))
	default:
		m.editor.SetWidth(innerWidth)
		m.editor.SetHeight(contentHeight)
		content = m.editor.View()
	}

	header := headerStyle.Render(truncateWithEllipsis(m.rightHeader(), innerWidth))
	body := padBlock(content, innerWidth, contentHeight)
	return style.Width(width).Height(height).Render(header + "\n" + body)
}

// rightHeader names the open note, with a marker while it has unsaved edits.
func (m *Model) rightHeader() string {
	session := m.nb.Session()
	if !session.IsOpen() {
		return m.loc.T("title")
	}
	header := m.displayRelative(session.Path())
	if session.Dirty() {
		header += " " + dirtyMark.Render("●")
	}
	return header
}

// promptMeta returns the title and context line of the active prompt.
func (m *Model) promptMeta() (string, string) {
	switch m.mode {
	case modeNewNote:
		return m.loc.T("new_note") + " - " + m.loc.T("note_name"), m.displayRelative(m.target)
	case modeNewFolder:
		return m.loc.T("new_folder") + " - " + m.loc.T("folder_name"), m.displayRelative(m.target)
	case modeRename:
		return m.loc.T("rename") + " - " + m.loc.T("new_name"), filepath.Base(m.target)
	case modeChangeRoot:
		return m.loc.T("change_dir") + " - " + m.loc.T("choose_folder"), m.nb.Root()
	}
	return "", ""
}

func (m *Model) renderSearchPopupOverlay(width, height int) string {
	popupWidth := min(70, max(44, width-SearchPopupPadding))
	popupHeight := min(16, max(SearchPopupHeight, height-4))
	popup := m.renderSearchPopup(popupWidth, popupHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

func (m *Model) renderSearchPopup(width, height int) string {
	innerWidth := max(0, width-popupStyle.GetHorizontalFrameSize())
	innerHeight := max(0, height-popupStyle.GetVerticalFrameSize())
	m.search.Width = max(0, innerWidth-2)

	lines := []string{
		titleStyle.Render(m.loc.T("search_label")),
		m.search.View(),
		"",
	}

	limit := max(0, innerHeight-len(lines))
	start := 0
	if m.searchCursor >= limit && limit > 0 {
		start = m.searchCursor - limit + 1
	}
	for i := start; i < min(len(m.searchResults), start+limit); i++ {
		result := m.searchResults[i]
		line := result.Title + "  " + mutedStyle.Render(m.displayRelative(filepath.Dir(result.Path)))
		line = truncate(line, innerWidth)
		if i == m.searchCursor {
			line = selectedStyle.Render(truncate(result.Title+"  "+m.displayRelative(filepath.Dir(result.Path)), innerWidth))
		}
		lines = append(lines, line)
	}
	if len(m.searchResults) == 0 && strings.TrimSpace(m.search.Value()) != "" {
		lines = append(lines, mutedStyle.Render(m.loc.T("no_results")))
	}

	content := padBlock(strings.Join(lines, "\n"), innerWidth, innerHeight)
	return popupStyle.Width(width).Height(height).Render(content)
}
