// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}

	selectionBg = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"}
)

// Base styles
var (
	// Title is the style for pane titles
	// NOTE: No margins - they break row hit-testing
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// TitleBlurred is a pane title when the pane does not have focus
	TitleBlurred = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Foreground(Subtle)

	// Pane is the container every region renders into
	Pane = lipgloss.NewStyle().
		PaddingLeft(1)
)

// Sidebar styles
var (
	SidebarItem = lipgloss.NewStyle()

	SidebarSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(selectionBg)

	// SidebarActive marks the scope in use when the sidebar is not focused
	SidebarActive = lipgloss.NewStyle().
			Foreground(Highlight)

	SidebarSeparator = lipgloss.NewStyle().
				Foreground(Subtle)

	SidebarCount = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Item styles
var (
	// ItemRow is the base style for an item row
	ItemRow = lipgloss.NewStyle()

	// ItemCursor is the row under the cursor
	ItemCursor = lipgloss.NewStyle().
			Bold(true).
			Background(selectionBg)

	// ItemSelected is the item shown in the detail pane
	ItemSelected = lipgloss.NewStyle().
			Foreground(Highlight)

	// ItemDone is the style for completed items
	ItemDone = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	ItemDate = lipgloss.NewStyle().
			Foreground(Subtle)

	ItemDateToday = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ItemDateOverdue = lipgloss.NewStyle().
			Foreground(ErrorColor)

	ItemFolder = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)
)

// Handle styles
var (
	Handle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3F3F46"})

	// HandleActive is shown while the boundary is being dragged
	HandleActive = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)
)

// Status bar styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(Subtle).
			PaddingLeft(1)

	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(1)

	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				PaddingLeft(1)

	StatusBarMode = lipgloss.NewStyle().
			Foreground(WarningColor).
			PaddingRight(1)
)

// Form and detail styles
var (
	InputLabel = lipgloss.NewStyle().
			Foreground(Subtle)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)

	DetailTitle = lipgloss.NewStyle().
			Bold(true)

	DetailLabel = lipgloss.NewStyle().
			Foreground(Subtle).
			Width(8)

	DetailValue = lipgloss.NewStyle()

	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
)

// ApplyColorProfile sets the Lip Gloss color profile for the TUI. NO_COLOR
// forces plain output; otherwise the terminal's own capabilities are used.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// MarkdownStyle resolves a glamour style name. "auto" and "" are replaced
// by "dark" or "light" from the terminal background, which must be queried
// before the program takes over the terminal.
func MarkdownStyle(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && name != "auto" {
		return name
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
