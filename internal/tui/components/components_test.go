package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hy4ri/taskdex/internal/todo"
)

func entries() []SidebarEntry {
	return BuildSidebarEntries(todo.DefaultFolders(), func(s todo.Scope) int {
		if s == todo.FolderScope(2) {
			return 3
		}
		return 0
	})
}

func TestBuildSidebarEntries(t *testing.T) {
	e := entries()
	require.Len(t, e, 8)
	assert.Equal(t, todo.SmartScope(todo.SmartToday), e[0].Scope)
	assert.True(t, e[3].Separator)
	assert.Equal(t, "Personal", e[4].Label)
	assert.Equal(t, 3, e[5].Count)
}

func TestSidebarCursorSkipsSeparator(t *testing.T) {
	s := NewSidebar()
	s.SetData(entries())
	s.SetSize(30, 20)

	s.CursorTop()
	s.MoveCursor(1)
	s.MoveCursor(1)
	assert.Equal(t, 2, s.Cursor())
	s.MoveCursor(1)
	assert.Equal(t, 4, s.Cursor())
	s.MoveCursor(-1)
	assert.Equal(t, 2, s.Cursor())

	s.CursorBottom()
	assert.Equal(t, 7, s.Cursor())
	s.MoveCursor(1)
	assert.Equal(t, 7, s.Cursor())
}

func TestSidebarClick(t *testing.T) {
	s := NewSidebar()
	s.SetData(entries())
	s.SetSize(30, 20)

	_, ok := s.RowAt(0)
	assert.False(t, ok, "title row")
	_, ok = s.RowAt(2 + 3)
	assert.False(t, ok, "separator row")

	row, ok := s.RowAt(2 + 5)
	require.True(t, ok)
	cmd := s.ClickRow(row)
	require.NotNil(t, cmd)
	assert.Equal(t, ScopeSelectedMsg{Scope: todo.FolderScope(2)}, cmd())
}

func TestSidebarSyncCursor(t *testing.T) {
	s := NewSidebar()
	s.SetData(entries())
	s.SetActive(todo.FolderScope(3))
	s.SyncCursor()
	assert.Equal(t, 6, s.Cursor())
}

func TestSidebarCollapsedView(t *testing.T) {
	s := NewSidebar()
	s.SetData(entries())
	s.SetSize(6, 12)

	assert.Contains(t, s.View(), "Lists")
	s.SetCollapsed(true)
	view := s.View()
	assert.Contains(t, view, "≡")
	assert.NotContains(t, view, "Personal")
}

func listItems() []todo.Item {
	return []todo.Item{
		{ID: 1, FolderID: 1, Title: "Buy milk", Date: "2025-06-15"},
		{ID: 2, FolderID: 2, Title: "Write report"},
		{ID: 3, FolderID: 1, Title: "Old errand", IsDone: true},
	}
}

func newList() *ItemListModel {
	l := NewItemList()
	l.SetSize(40, 20)
	l.SetToday(time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local))
	l.SetFolders(todo.DefaultFolders())
	l.SetData(listItems())
	return l
}

func TestItemListKeepsCursorOnItem(t *testing.T) {
	l := newList()
	l.MoveCursor(2)
	cur, _ := l.Current()
	require.Equal(t, int64(3), cur.ID)

	items := listItems()
	l.SetData([]todo.Item{items[2], items[0]})
	cur, _ = l.Current()
	assert.Equal(t, int64(3), cur.ID)

	l.ResetCursor()
	l.SetData(listItems())
	assert.Equal(t, 0, l.Cursor())
}

func TestItemListClick(t *testing.T) {
	l := newList()

	// Rows start below the three header lines; column 1 is the checkbox.
	cmd := l.ClickAt(1, 3)
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleRequestMsg{ID: 1}, cmd())

	cmd = l.ClickAt(12, 4)
	require.NotNil(t, cmd)
	assert.Equal(t, ItemSelectedMsg{ID: 2}, cmd())
	assert.Equal(t, 1, l.Cursor())

	assert.Nil(t, l.ClickAt(5, 1))

	cmd = l.ClickAt(5, 0)
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestItemListFormClick(t *testing.T) {
	l := newList()

	l.ClickAt(10, 20-itemListFormLines+2)
	assert.True(t, l.Adding())
	assert.Equal(t, fieldDate, l.field)
}

func TestItemListForm(t *testing.T) {
	l := newList()
	l.StartAdding()
	require.True(t, l.Adding())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Tea")})
	l.NextField()
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2025-07-01")})

	msg := l.Submit()()
	assert.Equal(t, AddRequestMsg{Title: "Tea", Date: "2025-07-01"}, msg)

	l.ResetForm()
	title, date := l.FormValues()
	assert.Empty(t, title)
	assert.Empty(t, date)
	assert.Equal(t, fieldTitle, l.field)

	l.Blur()
	assert.False(t, l.Adding())
}

func TestItemListIgnoresKeysWhenNotAdding(t *testing.T) {
	l := newList()
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	title, _ := l.FormValues()
	assert.Empty(t, title)
}

func TestItemListView(t *testing.T) {
	l := newList()
	l.SetHeader("Today", true)
	view := l.View()
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "3 items")
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "Work")

	l.SetData(nil)
	assert.Contains(t, l.View(), "No items")

	l.SetLoading(true, "*")
	assert.Contains(t, l.View(), "Loading...")
}

func TestDetail(t *testing.T) {
	d := NewDetail("notty")
	d.SetSize(50, 20)

	assert.Contains(t, d.View(), "Select an item")
	assert.Nil(t, d.ClickAt(0, 4))

	it := todo.Item{ID: 7, FolderID: 2, Title: "Write report", Content: "Some **notes**"}
	d.SetItem(&it, "Work")

	view := d.View()
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "Work")
	assert.Contains(t, view, "notes")

	_, ok := d.Item()
	assert.True(t, ok)

	// Header lines plus the checkbox line within the content.
	cmd := d.ClickAt(3, detailHeaderLines+detailCheckboxLine)
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleRequestMsg{ID: 7}, cmd())
	assert.Nil(t, d.ClickAt(3, 1))
	assert.Equal(t, BackMsg{}, d.ClickAt(3, 0)())
}

func TestDetailWithoutNotes(t *testing.T) {
	d := NewDetail("auto")
	d.SetSize(40, 10)
	it := todo.Item{ID: 1, Title: "Plain"}
	d.SetItem(&it, "Personal")
	assert.True(t, strings.Contains(d.View(), "No notes"))
}

func TestDetailReusesRenderersByWidth(t *testing.T) {
	d := NewDetail("auto")
	assert.Equal(t, "dark", d.markdownStyle)

	it := todo.Item{ID: 1, Title: "Notes", Content: "some **bold** text"}
	d.SetItem(&it, "Personal")
	d.SetSize(40, 10)
	d.SetSize(60, 10)
	first := d.renderers[d.innerWidth()]
	require.NotNil(t, first)

	d.SetSize(40, 10)
	d.SetSize(60, 10)
	assert.Len(t, d.renderers, 2)
	assert.Same(t, first, d.renderers[d.innerWidth()])
}
