package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui/styles"
	"github.com/hy4ri/taskdex/internal/tui/utils"
)

const (
	// itemListHeaderLines covers the title, the count line and a blank.
	itemListHeaderLines = 3

	// itemListFormLines covers a blank, two inputs and the hint.
	itemListFormLines = 4
)

// Add form fields.
const (
	fieldTitle = iota
	fieldDate
)

// ItemListModel manages the visible items and the add form.
type ItemListModel struct {
	items        []todo.Item
	folders      []todo.Folder
	title        string
	showFolder   bool
	selectedID   int64
	cursor       int
	scrollOffset int

	width, height int
	focused       bool
	loading       bool
	spinnerView   string
	today         time.Time

	adding     bool
	field      int
	titleInput textinput.Model
	dateInput  textinput.Model
}

// NewItemList creates a new ItemListModel.
func NewItemList() *ItemListModel {
	ti := textinput.New()
	ti.Placeholder = "New item..."
	ti.CharLimit = 200
	ti.Prompt = ""

	di := textinput.New()
	di.Placeholder = todo.DateLayout
	di.CharLimit = len(todo.DateLayout)
	di.Prompt = ""

	return &ItemListModel{
		titleInput: ti,
		dateInput:  di,
		today:      time.Now(),
	}
}

// Init implements Component.
func (l *ItemListModel) Init() tea.Cmd {
	return nil
}

// Update implements Component. While the add form is active, messages go
// to the focused input.
func (l *ItemListModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if !l.adding {
		return l, nil
	}
	var cmd tea.Cmd
	if l.field == fieldTitle {
		l.titleInput, cmd = l.titleInput.Update(msg)
	} else {
		l.dateInput, cmd = l.dateInput.Update(msg)
	}
	return l, cmd
}

// SetData implements DataReceiver. The cursor stays on the same item when
// it is still visible.
func (l *ItemListModel) SetData(items []todo.Item) {
	var currentID int64
	if it, ok := l.Current(); ok {
		currentID = it.ID
	}
	l.items = items
	l.cursor = 0
	for i, it := range items {
		if it.ID == currentID {
			l.cursor = i
			break
		}
	}
	l.clampCursor()
}

// SetHeader sets the scope label and whether rows show their folder.
func (l *ItemListModel) SetHeader(title string, showFolder bool) {
	l.title = title
	l.showFolder = showFolder
}

// SetFolders sets the folders used to label rows in smart views.
func (l *ItemListModel) SetFolders(folders []todo.Folder) {
	l.folders = folders
}

// SetSelected marks the item shown in the detail pane.
func (l *ItemListModel) SetSelected(id int64) {
	l.selectedID = id
}

// SetLoading toggles the loading header.
func (l *ItemListModel) SetLoading(loading bool, spinnerView string) {
	l.loading = loading
	l.spinnerView = spinnerView
}

// SetToday sets the date used to color item dates.
func (l *ItemListModel) SetToday(t time.Time) {
	l.today = t
}

// ResetCursor moves the cursor back to the top and forgets the current
// rows, so the next SetData does not follow the old cursor item.
func (l *ItemListModel) ResetCursor() {
	l.items = nil
	l.cursor = 0
	l.scrollOffset = 0
}

// MoveCursor moves the cursor by delta.
func (l *ItemListModel) MoveCursor(delta int) {
	l.cursor += delta
	l.clampCursor()
}

// CursorTop moves the cursor to the first item.
func (l *ItemListModel) CursorTop() {
	l.cursor = 0
}

// CursorBottom moves the cursor to the last item.
func (l *ItemListModel) CursorBottom() {
	l.cursor = len(l.items) - 1
	l.clampCursor()
}

// Cursor returns the cursor index.
func (l *ItemListModel) Cursor() int { return l.cursor }

// Current returns the item under the cursor.
func (l *ItemListModel) Current() (todo.Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return todo.Item{}, false
	}
	return l.items[l.cursor], true
}

// Select emits an ItemSelectedMsg for the item under the cursor.
func (l *ItemListModel) Select() tea.Cmd {
	it, ok := l.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg { return ItemSelectedMsg{ID: it.ID} }
}

// Toggle emits a ToggleRequestMsg for the item under the cursor.
func (l *ItemListModel) Toggle() tea.Cmd {
	it, ok := l.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg { return ToggleRequestMsg{ID: it.ID} }
}

// RowAt implements RowHitter.
func (l *ItemListModel) RowAt(y int) (int, bool) {
	if y < itemListHeaderLines || y >= itemListHeaderLines+l.listHeight() {
		return 0, false
	}
	idx := y - itemListHeaderLines + l.scrollOffset
	if idx < 0 || idx >= len(l.items) {
		return 0, false
	}
	return idx, true
}

// ClickAt handles a click at column x, row y inside the list. Clicking the
// checkbox toggles the item; clicking elsewhere on a row opens it. Clicking
// an input focuses the add form and clicking the title goes back.
func (l *ItemListModel) ClickAt(x, y int) tea.Cmd {
	if y == 0 {
		return func() tea.Msg { return BackMsg{} }
	}
	if row, ok := l.RowAt(y); ok {
		l.cursor = row
		it := l.items[row]
		// Checkbox occupies the first three cells after the pane padding.
		if x-styles.Pane.GetHorizontalFrameSize() < runewidth.StringWidth(utils.Checkbox(false)) {
			return func() tea.Msg { return ToggleRequestMsg{ID: it.ID} }
		}
		return func() tea.Msg { return ItemSelectedMsg{ID: it.ID} }
	}

	formTop := l.height - itemListFormLines
	switch y {
	case formTop + 1:
		return l.StartAdding()
	case formTop + 2:
		cmd := l.StartAdding()
		l.focusField(fieldDate)
		return cmd
	}
	return nil
}

// StartAdding focuses the title input.
func (l *ItemListModel) StartAdding() tea.Cmd {
	l.adding = true
	l.focusField(fieldTitle)
	return textinput.Blink
}

// StopAdding blurs the form. Typed values are kept.
func (l *ItemListModel) StopAdding() {
	l.adding = false
	l.titleInput.Blur()
	l.dateInput.Blur()
}

// Adding reports whether the add form has focus.
func (l *ItemListModel) Adding() bool { return l.adding }

// NextField cycles focus between the title and date inputs.
func (l *ItemListModel) NextField() {
	if l.field == fieldTitle {
		l.focusField(fieldDate)
	} else {
		l.focusField(fieldTitle)
	}
}

// Submit emits an AddRequestMsg with the current form values.
func (l *ItemListModel) Submit() tea.Cmd {
	title, date := l.FormValues()
	return func() tea.Msg {
		return AddRequestMsg{Title: title, Date: date}
	}
}

// FormValues returns the raw input values.
func (l *ItemListModel) FormValues() (title, date string) {
	return l.titleInput.Value(), strings.TrimSpace(l.dateInput.Value())
}

// SetFormValues replaces the input values.
func (l *ItemListModel) SetFormValues(title, date string) {
	l.titleInput.SetValue(title)
	l.dateInput.SetValue(date)
}

// ResetForm clears both inputs and returns focus to the title.
func (l *ItemListModel) ResetForm() {
	l.titleInput.Reset()
	l.dateInput.Reset()
	if l.adding {
		l.focusField(fieldTitle)
	}
}

func (l *ItemListModel) focusField(f int) {
	l.field = f
	if f == fieldTitle {
		l.dateInput.Blur()
		l.titleInput.Focus()
	} else {
		l.titleInput.Blur()
		l.dateInput.Focus()
	}
}

// View implements Component.
func (l *ItemListModel) View() string {
	var b strings.Builder

	inner := l.width - styles.Pane.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	titleStyle := styles.TitleBlurred
	if l.focused {
		titleStyle = styles.Title
	}
	b.WriteString(titleStyle.Render(utils.TruncateString(l.title, inner)))
	b.WriteString("\n")
	if l.loading {
		b.WriteString(l.spinnerView + styles.Subtitle.Render(" Loading..."))
	} else {
		b.WriteString(styles.Subtitle.Render(countLabel(len(l.items))))
	}
	b.WriteString("\n\n")

	listHeight := l.listHeight()
	l.ensureVisible(listHeight)

	end := l.scrollOffset + listHeight
	if end > len(l.items) {
		end = len(l.items)
	}
	lines := 0
	if len(l.items) == 0 && !l.loading {
		b.WriteString(styles.HelpDesc.Render("No items"))
		b.WriteString("\n")
		lines++
	}
	for i := l.scrollOffset; i < end; i++ {
		b.WriteString(l.renderRow(i, inner))
		b.WriteString("\n")
		lines++
	}
	if lines < listHeight {
		b.WriteString(strings.Repeat("\n", listHeight-lines))
	}

	b.WriteString("\n")
	b.WriteString(l.renderInput("Title", l.titleInput, inner))
	b.WriteString("\n")
	b.WriteString(l.renderInput("Date", l.dateInput, inner))
	b.WriteString("\n")
	hint := "a: add"
	if l.adding {
		hint = "enter: save • tab: next field • esc: cancel"
	}
	b.WriteString(styles.HelpDesc.Render(utils.TruncateString(hint, inner)))

	return styles.Pane.
		Width(l.width).MaxWidth(l.width).
		Height(l.height).MaxHeight(l.height).
		Render(b.String())
}

func (l *ItemListModel) renderRow(i, width int) string {
	it := l.items[i]

	date := ""
	dateStyle := styles.ItemDate
	if d, ok := it.DateIn(l.today.Location()); ok {
		date = it.Date
		today := startOfDay(l.today)
		switch {
		case d.Equal(today):
			dateStyle = styles.ItemDateToday
		case d.Before(today) && !it.IsDone:
			dateStyle = styles.ItemDateOverdue
		}
	}

	folder := ""
	if l.showFolder {
		folder = todo.FolderName(l.folders, it.FolderID)
	}

	box := utils.Checkbox(it.IsDone) + " "
	suffix := ""
	suffixWidth := 0
	if date != "" {
		suffix += " " + dateStyle.Render(date)
		suffixWidth += 1 + runewidth.StringWidth(date)
	}
	if folder != "" {
		suffix += " " + styles.ItemFolder.Render(folder)
		suffixWidth += 1 + runewidth.StringWidth(folder)
	}

	titleWidth := width - runewidth.StringWidth(box) - suffixWidth
	if titleWidth < 4 {
		titleWidth = width - runewidth.StringWidth(box)
		suffix = ""
	}
	title := utils.PadRight(it.Title, titleWidth)
	if it.IsDone {
		title = styles.ItemDone.Render(title)
	}

	line := box + title + suffix
	switch {
	case i == l.cursor && l.focused:
		return styles.ItemCursor.Render(line)
	case it.ID == l.selectedID:
		return styles.ItemSelected.Render(line)
	}
	return styles.ItemRow.Render(line)
}

func (l *ItemListModel) renderInput(label string, in textinput.Model, width int) string {
	prefix := styles.InputLabel.Render(fmt.Sprintf("%-6s", label))
	in.Width = width - 7
	if in.Width < 1 {
		in.Width = 1
	}
	return prefix + in.View()
}

func (l *ItemListModel) listHeight() int {
	h := l.height - itemListHeaderLines - itemListFormLines
	if h < 1 {
		return 1
	}
	return h
}

func (l *ItemListModel) ensureVisible(listHeight int) {
	if l.cursor < l.scrollOffset {
		l.scrollOffset = l.cursor
	}
	if l.cursor >= l.scrollOffset+listHeight {
		l.scrollOffset = l.cursor - listHeight + 1
	}
	if l.scrollOffset > len(l.items)-listHeight {
		l.scrollOffset = len(l.items) - listHeight
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

func (l *ItemListModel) clampCursor() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// SetSize implements Component.
func (l *ItemListModel) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Focus sets the list as focused.
func (l *ItemListModel) Focus() {
	l.focused = true
}

// Blur removes focus from the list and its form.
func (l *ItemListModel) Blur() {
	l.focused = false
	l.StopAdding()
}

// Focused returns whether the list is focused.
func (l *ItemListModel) Focused() bool {
	return l.focused
}

func countLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
