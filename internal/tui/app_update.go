package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskdex/internal/layout"
	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui/components"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a, a.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.Resize(msg.Width, msg.Height)
		if !a.layout.IsWide() {
			a.setFocus(paneForStage(a.stage))
		}
		a.resizeComponents()
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.list.SetLoading(true, a.spinner.View())
		return a, cmd

	case itemsLoadedMsg:
		return a, a.handleItemsLoaded(msg.items)

	case loadFailedMsg:
		a.loading = false
		a.items = nil
		a.sel.ItemID = 0
		a.showError("Failed to load items", msg.err)
		a.refresh()
		return a, nil

	case components.ScopeSelectedMsg:
		a.selectScope(msg.Scope)
		return a, nil

	case components.ItemSelectedMsg:
		a.selectItem(msg.ID)
		return a, nil

	case components.ToggleRequestMsg:
		return a, a.toggle(msg.ID)

	case components.AddRequestMsg:
		return a, a.add(msg)

	case components.BackMsg:
		// Title clicks step back only where a single pane is shown.
		if !a.layout.IsWide() {
			a.goBack()
		}
		return a, nil

	case itemCreatedMsg:
		a.items = append(a.items, msg.item)
		a.sel.ItemID = msg.item.ID
		a.list.ResetForm()
		a.err = nil
		a.statusMsg = "Added: " + msg.item.Title
		a.logger.Debug("item created", "id", msg.item.ID, "folder", msg.item.FolderID)
		a.refresh()
		return a, nil

	case createFailedMsg:
		a.showError("Failed to add item", msg.err)
		return a, nil

	case toggleSavedMsg:
		a.logger.Debug("item saved", "id", msg.id)
		return a, nil

	case toggleFailedMsg:
		// The optimistic change stays in place.
		a.logger.Error("failed to save done flag", "id", msg.id, "err", msg.err)
		a.err = msg.err
		a.statusMsg = fmt.Sprintf("Failed to save item %d: %v", msg.id, msg.err)
		return a, nil

	case statusMsg:
		a.err = nil
		a.statusMsg = msg.msg
		return a, nil

	case errMsg:
		a.showError("Error", msg.err)
		return a, nil
	}

	if a.list.Adding() {
		_, cmd := a.list.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleItemsLoaded replaces the cache and sends the due-today
// notification once per session.
func (a *App) handleItemsLoaded(items []todo.Item) tea.Cmd {
	a.loading = false
	a.err = nil
	a.items = items
	if _, ok := todo.Find(items, a.sel.ItemID); !ok {
		a.sel.ItemID = 0
	}
	a.logger.Debug("items loaded", "count", len(items))
	a.refresh()

	if !a.notify || a.notified {
		return nil
	}
	a.notified = true
	if n := todo.CountDueToday(items, a.now()); n > 0 {
		return a.notifyDue(n)
	}
	return nil
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.list.Adding() {
		return a.handleFormKey(msg)
	}

	action, ok := a.keyState.HandleKey(msg, a.keymap)
	if !ok || action == "" {
		return a, nil
	}
	return a.handleAction(action)
}

// handleFormKey routes keys to the add form.
func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.list.StopAdding()
		return a, nil
	case "tab", "shift+tab":
		a.list.NextField()
		return a, nil
	case "enter":
		return a, a.list.Submit()
	}
	_, cmd := a.list.Update(msg)
	return a, cmd
}

// handleAction runs a keymap action.
func (a *App) handleAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "quit":
		return a, tea.Quit

	case "up":
		a.moveCursor(-1)
	case "down":
		a.moveCursor(1)
	case "top":
		a.cursorEdge(true)
	case "bottom":
		a.cursorEdge(false)

	case "select":
		switch a.focus {
		case PaneSidebar:
			return a, a.sidebar.Select()
		case PaneList:
			return a, a.list.Select()
		}

	case "back":
		a.goBack()

	case "switch_pane":
		if a.layout.IsWide() {
			a.setFocus((a.focus + 1) % 3)
		}

	case "help":
		a.help.ShowAll = !a.help.ShowAll
		a.resizeComponents()

	case "refresh":
		a.loading = true
		a.err = nil
		a.statusMsg = ""
		a.list.SetLoading(true, a.spinner.View())
		return a, tea.Batch(a.spinner.Tick, a.loadItems())

	case "toggle":
		switch a.focus {
		case PaneList:
			return a, a.list.Toggle()
		case PaneDetail:
			if it, ok := a.detail.Item(); ok {
				return a, a.toggle(it.ID)
			}
		}

	case "add":
		if a.layout.IsWide() {
			a.setFocus(PaneList)
		} else {
			a.setStage(layout.StageItems)
		}
		return a, a.list.StartAdding()

	case "copy":
		if it, ok := a.focusedItem(); ok {
			return a, a.copyTitle(it)
		}

	case "collapse":
		a.layout.ToggleCollapse()
		a.sidebar.SetCollapsed(a.layout.Collapsed())
		a.resizeComponents()

	case "shrink":
		a.stepBoundary(layout.Shrink, false)
	case "grow":
		a.stepBoundary(layout.Grow, false)
	case "shrink_more":
		a.stepBoundary(layout.Shrink, true)
	case "grow_more":
		a.stepBoundary(layout.Grow, true)
	}

	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.focus {
	case PaneSidebar:
		a.sidebar.MoveCursor(delta)
	case PaneList:
		a.list.MoveCursor(delta)
	case PaneDetail:
		if delta > 0 {
			a.detail.ScrollDown(delta)
		} else {
			a.detail.ScrollUp(-delta)
		}
	}
}

func (a *App) cursorEdge(top bool) {
	switch a.focus {
	case PaneSidebar:
		if top {
			a.sidebar.CursorTop()
		} else {
			a.sidebar.CursorBottom()
		}
	case PaneList:
		if top {
			a.list.CursorTop()
		} else {
			a.list.CursorBottom()
		}
	}
}

// focusedItem returns the item the user is looking at.
func (a *App) focusedItem() (todo.Item, bool) {
	if a.focus == PaneList {
		return a.list.Current()
	}
	return todo.Find(a.items, a.sel.ItemID)
}

// stepBoundary resizes the boundary next to the focused pane.
func (a *App) stepBoundary(dir layout.Direction, large bool) {
	b := layout.MidRight
	if a.focus == PaneSidebar {
		b = layout.LeftMid
	}
	a.layout.Step(b, dir, large)
	a.resizeComponents()
}

// selectScope switches the visible scope and clears the item selection.
func (a *App) selectScope(scope todo.Scope) {
	a.sel.Select(scope)
	a.list.ResetCursor()
	a.stage = layout.StageItems
	a.setFocus(PaneList)
	a.refresh()
	a.sidebar.SyncCursor()
}

// selectItem opens an item in the detail pane.
func (a *App) selectItem(id int64) {
	if _, ok := todo.Find(a.items, id); !ok {
		return
	}
	a.sel.ItemID = id
	a.setStage(layout.StageDetail)
	a.refresh()
}

// goBack moves one stage back. In wide mode focus moves one pane left.
func (a *App) goBack() {
	if a.layout.IsWide() {
		if a.focus > PaneSidebar {
			a.setFocus(a.focus - 1)
		}
		a.stage = a.stage.Back()
		return
	}
	a.setStage(a.stage.Back())
}

// toggle flips an item's done flag locally, then saves it.
func (a *App) toggle(id int64) tea.Cmd {
	items, updated, ok := todo.Toggle(a.items, id)
	if !ok {
		return nil
	}
	a.items = items
	a.refresh()
	return a.saveDone(id, updated.IsDone)
}

// add validates the form and creates an item in the target folder.
func (a *App) add(req components.AddRequestMsg) tea.Cmd {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil
	}
	if !todo.ValidDate(req.Date) {
		a.err = nil
		a.statusMsg = "Date must look like " + todo.DateLayout
		return nil
	}
	folder := a.sel.TargetFolder()
	if folder == 0 {
		a.statusMsg = "No folder to add to"
		return nil
	}
	return a.createItem(todo.NewItem{
		FolderID: folder,
		Title:    title,
		Date:     req.Date,
	})
}

// showError logs err and shows it in the status bar.
func (a *App) showError(prefix string, err error) {
	a.logger.Error(prefix, "err", err)
	a.err = err
	a.statusMsg = prefix + ": " + err.Error()
}

// handleMouseMsg handles clicks, wheel scrolling and handle drags.
func (a *App) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	// A release anywhere ends a drag.
	if msg.Action == tea.MouseActionRelease {
		if a.layout.Resizing() {
			a.layout.EndDrag()
			a.resizeComponents()
		}
		return nil
	}

	if a.layout.Resizing() {
		if msg.Action == tea.MouseActionMotion {
			a.layout.UpdateDrag(msg.X)
			a.resizeComponents()
		}
		return nil
	}

	if msg.Y < 0 || msg.Y >= a.paneHeight() {
		return nil
	}

	pane, localX, ok := a.paneAt(msg.X)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if ok && pane == PaneDetail {
			a.detail.ScrollUp(3)
		} else if ok {
			a.scrollPane(pane, -1)
		}

	case tea.MouseButtonWheelDown:
		if ok && pane == PaneDetail {
			a.detail.ScrollDown(3)
		} else if ok {
			a.scrollPane(pane, 1)
		}

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		if b, onHandle := a.layout.HandleAt(msg.X); onHandle {
			a.layout.BeginDrag(b)
			return nil
		}
		if !ok {
			return nil
		}
		if a.list.Adding() && pane != PaneList {
			a.list.StopAdding()
		}
		if pane != a.focus {
			a.setFocus(pane)
		}
		switch pane {
		case PaneSidebar:
			if row, hit := a.sidebar.RowAt(msg.Y); hit {
				return a.sidebar.ClickRow(row)
			}
		case PaneList:
			return a.list.ClickAt(localX, msg.Y)
		case PaneDetail:
			return a.detail.ClickAt(localX, msg.Y)
		}
	}
	return nil
}

func (a *App) scrollPane(p Pane, delta int) {
	switch p {
	case PaneSidebar:
		a.sidebar.MoveCursor(delta)
	case PaneList:
		a.list.MoveCursor(delta)
	}
}

// paneAt maps a screen column to the pane under it and the column inside
// that pane. Handle columns map to no pane.
func (a *App) paneAt(x int) (Pane, int, bool) {
	if !a.layout.IsWide() {
		return paneForStage(a.stage), x, true
	}
	w := a.layout.Widths()
	midStart := w.Lead + w.Handle
	detailStart := midStart + w.Mid + w.Handle
	switch {
	case x < 0:
		return 0, 0, false
	case x < w.Lead:
		return PaneSidebar, x, true
	case x < midStart:
		return 0, 0, false
	case x < midStart+w.Mid:
		return PaneList, x - midStart, true
	case x < detailStart:
		return 0, 0, false
	case x < detailStart+w.Detail:
		return PaneDetail, x - detailStart, true
	}
	return 0, 0, false
}

// paneHeight is the number of rows available to the panes.
func (a *App) paneHeight() int {
	h := a.height - statusBarHeight - lipgloss.Height(a.helpView())
	if h < 1 {
		return 1
	}
	return h
}

// resizeComponents pushes the layout geometry into the components.
func (a *App) resizeComponents() {
	a.help.Width = a.width
	h := a.paneHeight()
	w := a.layout.Widths()
	a.sidebar.SetSize(w.Lead, h)
	a.list.SetSize(w.Mid, h)
	a.detail.SetSize(w.Detail, h)
}
