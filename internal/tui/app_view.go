package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskdex/internal/layout"
	"github.com/hy4ri/taskdex/internal/tui/styles"
	"github.com/hy4ri/taskdex/internal/tui/utils"
)

const statusBarHeight = 1

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var panes string
	if a.layout.IsWide() {
		panes = a.renderWide()
	} else {
		panes = a.renderCompact()
	}

	parts := []string{panes}
	if h := a.helpView(); h != "" {
		parts = append(parts, h)
	}
	parts = append(parts, a.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderWide draws all three panes separated by drag handles.
func (a *App) renderWide() string {
	h := a.paneHeight()
	active, dragging := a.layout.ActiveBoundary()

	handle := func(b layout.Boundary) string {
		style := styles.Handle
		if dragging && active == b {
			style = styles.HandleActive
		}
		return style.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.sidebar.View(),
		handle(layout.LeftMid),
		a.list.View(),
		handle(layout.MidRight),
		a.detail.View(),
	)
}

// renderCompact draws only the pane for the current stage.
func (a *App) renderCompact() string {
	switch paneForStage(a.stage) {
	case PaneList:
		return a.list.View()
	case PaneDetail:
		return a.detail.View()
	}
	return a.sidebar.View()
}

func (a *App) helpView() string {
	return a.help.View(a.keymap)
}

// renderStatusBar shows errors, the last status message or a summary.
func (a *App) renderStatusBar() string {
	var right string
	if a.layout.Resizing() {
		right = styles.StatusBarMode.Render("RESIZE")
	} else if !a.layout.IsWide() {
		right = styles.StatusBarMode.Render(a.stage.String())
	}

	avail := a.width - lipgloss.Width(right) - styles.StatusBar.GetHorizontalFrameSize()
	if avail < 0 {
		avail = 0
	}

	var left string
	switch {
	case a.err != nil:
		left = styles.StatusBarError.Render(utils.TruncateString(a.statusMsg, avail))
	case a.statusMsg != "":
		left = styles.StatusBarSuccess.Render(utils.TruncateString(a.statusMsg, avail))
	case a.loading:
		left = styles.StatusBar.Render(a.spinner.View() + " Loading items...")
	default:
		left = styles.StatusBar.Render(a.summary())
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) summary() string {
	open := 0
	for _, it := range a.items {
		if !it.IsDone {
			open++
		}
	}
	return fmt.Sprintf("%d open · %d total", open, len(a.items))
}
