package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatus draws the footer: key help and note metrics on the first row,
// the status message below.
func (m *Model) renderStatus(width, rows int) string {
	style := statusStyle
	if m.mode == modeEditNote {
		style = editStatus
	}

	lines := []string{m.footerHelpRow(max(0, width-1))}
	message := truncateWithEllipsis(strings.TrimSpace(m.status), max(0, width-1))
	if m.statusIsError {
		message = errorStatus.Render(message)
	}
	lines = append(lines, message)
	for len(lines) < rows {
		lines = append(lines, "")
	}

	rendered := make([]string, 0, rows)
	for _, line := range lines[:rows] {
		rendered = append(rendered, style.Width(width).Render(" "+line))
	}
	return strings.Join(rendered, "\n")
}

// footerHelpRow packs the help segments and the context segments into one
// row of the given width. Help is cut first so the metrics stay visible.
func (m *Model) footerHelpRow(width int) string {
	context := strings.Join(m.statusContextSegments(), " | ")
	help := strings.Join(m.statusHelpSegments(), "  ")
	if context == "" {
		return truncateWithEllipsis(help, width)
	}
	room := width - lipgloss.Width(context) - len(" | ")
	if room <= 0 {
		return truncateWithEllipsis(context, width)
	}
	return truncateWithEllipsis(help, room) + " | " + context
}

func (m *Model) statusHelpSegments() []string {
	switch {
	case m.mode == modeEditNote:
		return []string{m.loc.T("help_edit")}
	case m.mode.isInputMode(), m.mode == modeConfirmDelete:
		return []string{"enter ok", "esc ×"}
	case m.mode == modeSearch:
		return []string{"↑/↓", "enter", "esc"}
	}
	return []string{m.loc.T("help_browse")}
}

func (m *Model) statusContextSegments() []string {
	parts := []string{m.treeSummary()}
	if metrics := m.noteMetricsSummary(); metrics != "" {
		parts = append(parts, metrics)
	}
	return parts
}
