package app

import (
	"strings"

	"github.com/treykane/cli-notebook/internal/search"
	"github.com/treykane/cli-notebook/internal/tree"
)

func (m *Model) renderTree(width, height int) string {
	innerWidth := max(0, width-paneStyle.GetHorizontalFrameSize())
	innerHeight := max(0, height-paneStyle.GetVerticalFrameSize())

	header := titleStyle.Render(m.loc.T("title") + ": " + m.nb.Root())
	lines := []string{truncateWithEllipsis(header, innerWidth)}

	visibleHeight := max(0, innerHeight-len(lines))
	start := min(m.treeOffset, max(0, len(m.rows)-1))
	end := min(len(m.rows), start+visibleHeight)

	for i := start; i < end; i++ {
		row := m.rows[i]
		if i == m.cursor {
			line := truncate(m.formatTreeRow(row, false), innerWidth)
			lines = append(lines, selectedStyle.Width(innerWidth).Render(line))
			continue
		}
		lines = append(lines, truncate(m.formatTreeRow(row, true), innerWidth))
	}
	if len(m.rows) == 0 {
		lines = append(lines, truncate(mutedStyle.Render(m.loc.T("empty_tree")), innerWidth))
	}

	content := padBlock(strings.Join(lines, "\n"), innerWidth, innerHeight)
	return paneStyle.Width(width).Height(height).Render(content)
}

// formatTreeRow renders one row. Styling is skipped for the selected row so
// the reverse highlight stays uniform.
func (m *Model) formatTreeRow(row tree.Row, styled bool) string {
	indent := strings.Repeat("  ", row.Depth)
	node := row.Node
	if node.IsDir() {
		marker := "▸ "
		if m.expanded[node.Path] {
			marker = "▾ "
		}
		name := node.Name + "/"
		if styled {
			name = treeDirName.Render(name)
		}
		return indent + marker + name
	}

	name := node.Name
	if styled {
		if search.IsNote(name) {
			name = treeFileName.Render(name)
		} else {
			name = treeOtherName.Render(name)
		}
	}
	mark := "  "
	if node.Path == m.nb.Session().Path() {
		mark = "• "
		if styled {
			mark = treeOpenMark.Render(mark)
		}
	}
	return indent + mark + name
}
