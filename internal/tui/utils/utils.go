// Package utils provides shared utility functions for the TUI.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/hy4ri/taskdex/internal/tui/styles"
)

// TruncateString truncates a string to a given cell width and adds an
// ellipsis if truncated. Wide characters count as two cells.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width cells, truncating first if
// needed.
func PadRight(s string, width int) string {
	s = TruncateString(s, width)
	return runewidth.FillRight(s, width)
}

// Checkbox returns the checkbox glyph for a done flag.
func Checkbox(done bool) string {
	if done {
		return styles.CheckboxChecked
	}
	return styles.CheckboxUnchecked
}

// FirstLine returns the first non-empty line of s.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
