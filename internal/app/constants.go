package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// DefaultTreeWidth is the minimum width allocated to the tree view
	DefaultTreeWidth = 40

	// TreeWidthDivider determines tree width as terminal_width / this value
	// when terminal is wide enough
	TreeWidthDivider = 3

	// SearchPopupPadding is the horizontal padding inside the search popup
	SearchPopupPadding = 8

	// SearchPopupHeight is the fixed height of the search popup
	SearchPopupHeight = 14

	// FooterRows is the number of rows reserved for the bottom status/help area.
	FooterRows = 2
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters allowed in text inputs
	InputCharLimit = 120

	// PathCharLimit bounds the change-root prompt.
	PathCharLimit = 1024
)

// Autosave constants
const (
	// DefaultAutosaveInterval is used when the caller does not configure one.
	DefaultAutosaveInterval = 2 * time.Second
)

// welcomeNoteName is seeded into an empty root on first run.
const welcomeNoteName = "Welcome"
