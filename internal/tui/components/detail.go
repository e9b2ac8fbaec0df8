package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui/styles"
	"github.com/hy4ri/taskdex/internal/tui/utils"
)

const (
	// detailHeaderLines covers the pane title and a blank.
	detailHeaderLines = 2

	// detailCheckboxLine is the content row holding the done checkbox.
	detailCheckboxLine = 2
)

// DetailModel displays the selected item.
type DetailModel struct {
	item          *todo.Item
	folderName    string
	width, height int
	focused       bool

	viewport      viewport.Model
	markdownStyle string
	// renderers is keyed by wrap width.
	renderers map[int]*glamour.TermRenderer
}

// NewDetail creates a new DetailModel. markdownStyle is a glamour standard
// style name. "auto" is not resolved here and falls back to "dark"; use
// styles.MarkdownStyle before the program starts.
func NewDetail(markdownStyle string) *DetailModel {
	if markdownStyle == "" || markdownStyle == "auto" {
		markdownStyle = "dark"
	}
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &DetailModel{
		viewport:      vp,
		markdownStyle: markdownStyle,
		renderers:     make(map[int]*glamour.TermRenderer),
	}
}

// Init implements Component.
func (d *DetailModel) Init() tea.Cmd {
	return nil
}

// Update implements Component. Mouse wheel and paging keys scroll the
// content.
func (d *DetailModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// SetItem shows it, or the empty state when it is nil.
func (d *DetailModel) SetItem(it *todo.Item, folderName string) {
	d.item = it
	d.folderName = folderName
	d.viewport.SetContent(d.renderContent())
}

// Item returns the item being shown.
func (d *DetailModel) Item() (todo.Item, bool) {
	if d.item == nil {
		return todo.Item{}, false
	}
	return *d.item, true
}

// ScrollDown scrolls the content by n lines.
func (d *DetailModel) ScrollDown(n int) {
	d.viewport.LineDown(n)
}

// ScrollUp scrolls the content by n lines.
func (d *DetailModel) ScrollUp(n int) {
	d.viewport.LineUp(n)
}

// ClickAt toggles the item when the checkbox row is clicked. Clicking the
// title goes back.
func (d *DetailModel) ClickAt(_, y int) tea.Cmd {
	if y == 0 {
		return func() tea.Msg { return BackMsg{} }
	}
	if d.item == nil {
		return nil
	}
	if y-detailHeaderLines+d.viewport.YOffset != detailCheckboxLine {
		return nil
	}
	id := d.item.ID
	return func() tea.Msg { return ToggleRequestMsg{ID: id} }
}

// View implements Component.
func (d *DetailModel) View() string {
	titleStyle := styles.TitleBlurred
	if d.focused {
		titleStyle = styles.Title
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Detail"))
	b.WriteString("\n\n")
	b.WriteString(d.viewport.View())

	return styles.Pane.
		Width(d.width).MaxWidth(d.width).
		Height(d.height).MaxHeight(d.height).
		Render(b.String())
}

func (d *DetailModel) renderContent() string {
	if d.item == nil {
		return styles.HelpDesc.Render("Select an item to see its details.")
	}
	it := d.item

	inner := d.innerWidth()

	var b strings.Builder
	b.WriteString(styles.DetailTitle.Render(utils.TruncateString(it.Title, inner)))
	b.WriteString("\n\n")

	status := "Not done"
	if it.IsDone {
		status = "Done"
	}
	b.WriteString(styles.DetailLabel.Render("Status") + utils.Checkbox(it.IsDone) + " " + status)
	b.WriteString("\n")

	date := it.Date
	if date == "" {
		date = "none"
	}
	b.WriteString(styles.DetailLabel.Render("Date") + styles.DetailValue.Render(date))
	b.WriteString("\n")
	b.WriteString(styles.DetailLabel.Render("Folder") + styles.DetailValue.Render(d.folderName))
	b.WriteString("\n\n")

	if strings.TrimSpace(it.Content) == "" {
		b.WriteString(styles.HelpDesc.Render("No notes"))
		return b.String()
	}
	b.WriteString(d.renderMarkdown(it.Content, inner))
	return b.String()
}

func (d *DetailModel) renderMarkdown(content string, width int) string {
	r, ok := d.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(d.markdownStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		d.renderers[width] = r
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (d *DetailModel) innerWidth() int {
	w := d.width - styles.Pane.GetHorizontalFrameSize()
	if w < 10 {
		return 10
	}
	return w
}

// SetSize implements Component.
func (d *DetailModel) SetSize(width, height int) {
	resized := width != d.width
	d.width = width
	d.height = height
	d.viewport.Width = d.innerWidth()
	d.viewport.Height = height - detailHeaderLines
	if d.viewport.Height < 1 {
		d.viewport.Height = 1
	}
	if resized {
		d.viewport.SetContent(d.renderContent())
	}
}

// Focus sets the detail pane as focused.
func (d *DetailModel) Focus() {
	d.focused = true
}

// Blur removes focus from the detail pane.
func (d *DetailModel) Blur() {
	d.focused = false
}

// Focused returns whether the detail pane is focused.
func (d *DetailModel) Focused() bool {
	return d.focused
}
