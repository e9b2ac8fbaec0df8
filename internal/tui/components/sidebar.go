package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui/styles"
	"github.com/hy4ri/taskdex/internal/tui/utils"
)

// sidebarHeaderLines is the number of rows above the first entry.
const sidebarHeaderLines = 2

// SidebarModel manages the scope list: smart views followed by folders.
type SidebarModel struct {
	entries       []SidebarEntry
	cursor        int
	scrollOffset  int
	width, height int
	focused       bool
	collapsed     bool
	active        todo.Scope
}

// NewSidebar creates a new SidebarModel.
func NewSidebar() *SidebarModel {
	return &SidebarModel{}
}

// Init implements Component.
func (s *SidebarModel) Init() tea.Cmd {
	return nil
}

// Update implements Component. Navigation is driven by the app through
// the cursor methods, so there is nothing to handle here.
func (s *SidebarModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	return s, nil
}

// SetData implements DataReceiver.
func (s *SidebarModel) SetData(entries []SidebarEntry) {
	s.entries = entries
	s.clampCursor()
}

// SetActive marks the scope currently in use.
func (s *SidebarModel) SetActive(scope todo.Scope) {
	s.active = scope
}

// SyncCursor moves the cursor onto the active scope.
func (s *SidebarModel) SyncCursor() {
	for i, e := range s.entries {
		if !e.Separator && e.Scope == s.active {
			s.cursor = i
			return
		}
	}
}

// SetCollapsed switches between the icon rail and the full list.
func (s *SidebarModel) SetCollapsed(collapsed bool) {
	s.collapsed = collapsed
}

// MoveCursor moves the cursor by delta, skipping separators.
func (s *SidebarModel) MoveCursor(delta int) {
	if len(s.entries) == 0 {
		return
	}
	next := s.cursor + delta
	for next >= 0 && next < len(s.entries) && s.entries[next].Separator {
		next += delta
	}
	if next < 0 || next >= len(s.entries) {
		return
	}
	s.cursor = next
}

// CursorTop moves the cursor to the first entry.
func (s *SidebarModel) CursorTop() {
	s.cursor = 0
	s.clampCursor()
}

// CursorBottom moves the cursor to the last entry.
func (s *SidebarModel) CursorBottom() {
	s.cursor = len(s.entries) - 1
	s.clampCursor()
}

// Cursor returns the cursor index.
func (s *SidebarModel) Cursor() int { return s.cursor }

// Current returns the entry under the cursor.
func (s *SidebarModel) Current() (SidebarEntry, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) || s.entries[s.cursor].Separator {
		return SidebarEntry{}, false
	}
	return s.entries[s.cursor], true
}

// Select emits a ScopeSelectedMsg for the entry under the cursor.
func (s *SidebarModel) Select() tea.Cmd {
	e, ok := s.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return ScopeSelectedMsg{Scope: e.Scope}
	}
}

// RowAt implements RowHitter.
func (s *SidebarModel) RowAt(y int) (int, bool) {
	idx := y - sidebarHeaderLines + s.scrollOffset
	if y < sidebarHeaderLines || idx < 0 || idx >= len(s.entries) || s.entries[idx].Separator {
		return 0, false
	}
	return idx, true
}

// ClickRow moves the cursor to row and selects it.
func (s *SidebarModel) ClickRow(row int) tea.Cmd {
	if row < 0 || row >= len(s.entries) || s.entries[row].Separator {
		return nil
	}
	s.cursor = row
	return s.Select()
}

// View implements Component.
func (s *SidebarModel) View() string {
	var b strings.Builder

	inner := s.width - styles.Pane.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	title := "Lists"
	if s.collapsed {
		title = "≡"
	}
	titleStyle := styles.TitleBlurred
	if s.focused {
		titleStyle = styles.Title
	}
	b.WriteString(titleStyle.Render(utils.TruncateString(title, inner)))
	b.WriteString("\n\n")

	listHeight := s.height - sidebarHeaderLines
	if listHeight < 1 {
		listHeight = 1
	}
	s.ensureVisible(listHeight)

	end := s.scrollOffset + listHeight
	if end > len(s.entries) {
		end = len(s.entries)
	}

	for i := s.scrollOffset; i < end; i++ {
		b.WriteString(s.renderEntry(i, inner))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return styles.Pane.
		Width(s.width).MaxWidth(s.width).
		Height(s.height).MaxHeight(s.height).
		Render(b.String())
}

func (s *SidebarModel) renderEntry(i, width int) string {
	e := s.entries[i]
	if e.Separator {
		return styles.SidebarSeparator.Render(strings.Repeat("─", width))
	}

	var line string
	if s.collapsed {
		line = utils.PadRight(e.Icon, width)
	} else {
		count := ""
		if e.Count > 0 {
			count = fmt.Sprintf("%d", e.Count)
		}
		name := e.Icon + " " + e.Label
		nameWidth := width - runewidth.StringWidth(count) - 1
		if nameWidth < 1 {
			nameWidth = width
			count = ""
		}
		line = utils.PadRight(name, nameWidth)
		if count != "" {
			line += " " + styles.SidebarCount.Render(count)
		}
	}

	switch {
	case i == s.cursor && s.focused:
		return styles.SidebarSelected.Render(line)
	case e.Scope == s.active:
		return styles.SidebarActive.Render(line)
	}
	return styles.SidebarItem.Render(line)
}

func (s *SidebarModel) ensureVisible(listHeight int) {
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+listHeight {
		s.scrollOffset = s.cursor - listHeight + 1
	}
	if s.scrollOffset > len(s.entries)-listHeight {
		s.scrollOffset = len(s.entries) - listHeight
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

func (s *SidebarModel) clampCursor() {
	if s.cursor >= len(s.entries) {
		s.cursor = len(s.entries) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if len(s.entries) > 0 && s.entries[s.cursor].Separator {
		s.MoveCursor(1)
	}
}

// SetSize implements Component.
func (s *SidebarModel) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus sets the sidebar as focused.
func (s *SidebarModel) Focus() {
	s.focused = true
}

// Blur removes focus from the sidebar.
func (s *SidebarModel) Blur() {
	s.focused = false
}

// Focused returns whether the sidebar is focused.
func (s *SidebarModel) Focused() bool {
	return s.focused
}
