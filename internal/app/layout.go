// layout.go centralizes the terminal layout calculations for the two-pane UI.
//
// The tree pane on the left has a fixed width; the editor pane fills the
// rest. FooterRows rows at the bottom hold the help line and the status line.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	LeftWidth     int // tree pane, including border
	RightWidth    int // editor pane, the remainder
	ContentHeight int // terminal height minus the footer
	EditorWidth   int // usable width inside the editor pane
	EditorHeight  int // usable height inside the editor pane, below its header
}

// calculateLayout computes all UI dimensions based on terminal size and mode.
//
// The tree pane width is the smaller of DefaultTreeWidth and
// terminal_width / TreeWidthDivider, so narrow terminals still get a usable
// editor.
func (m *Model) calculateLayout() LayoutDimensions {
	leftWidth := min(DefaultTreeWidth, m.width/TreeWidthDivider)
	rightWidth := max(0, m.width-leftWidth)
	contentHeight := max(0, m.height-FooterRows)

	style := previewPane
	if m.mode == modeEditNote {
		style = editPane
	}

	return LayoutDimensions{
		LeftWidth:     leftWidth,
		RightWidth:    rightWidth,
		ContentHeight: contentHeight,
		EditorWidth:   max(0, rightWidth-style.GetHorizontalFrameSize()),
		EditorHeight:  max(0, contentHeight-style.GetVerticalFrameSize()-1),
	}
}

// updateLayout resizes the widgets to the current terminal size.
func (m *Model) updateLayout() {
	layout := m.calculateLayout()
	m.editor.SetWidth(layout.EditorWidth)
	m.editor.SetHeight(layout.EditorHeight)
	m.input.Width = max(0, layout.EditorWidth-2)
}
