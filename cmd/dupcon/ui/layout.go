// Layout constants for consistent spacing across pages.
package ui

const (
	// Field cell width in the review table. Values longer than this are
	// truncated with an ellipsis for display only; edits keep full text.
	FieldCellWidth = 18
	CodeCellWidth  = 10
	RoleCellWidth  = 10

	// Search input sizing.
	SearchInputWidth = 40
	SearchCharLimit  = 64

	// Login input sizing.
	LoginInputWidth = 32
	LoginCharLimit  = 64

	MinimumTerminalWidth = 80
)

// truncateCell shortens s to width runes for table display.
func truncateCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
