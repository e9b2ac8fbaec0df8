package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"

	"github.com/hy4ri/taskdex/internal/layout"
	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui/components"
	"github.com/hy4ri/taskdex/internal/tui/styles"
)

// Pane identifies one of the three regions.
type Pane int

const (
	PaneSidebar Pane = iota
	PaneList
	PaneDetail
)

// Options configures an App.
type Options struct {
	Store   todo.Store
	Folders []todo.Folder
	Layout  *layout.Manager
	Logger  *log.Logger

	// InitialScope is selected on start; the zero value selects the first
	// folder.
	InitialScope todo.Scope

	VimMode       bool
	Notify        bool
	MarkdownStyle string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Notifier sends a desktop notification. Defaults to beeep.Notify.
	Notifier func(title, message string) error

	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(text string) error
}

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	store     todo.Store
	layout    *layout.Manager
	logger    *log.Logger
	now       func() time.Time
	notifier  func(title, message string) error
	clipboard func(text string) error

	// Data
	folders []todo.Folder
	items   []todo.Item
	sel     todo.Selection

	// View state
	stage layout.Stage
	focus Pane

	// UI state
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int
	notify    bool
	notified  bool

	// Components
	spinner  spinner.Model
	keymap   Keymap
	keyState KeyState
	help     help.Model
	sidebar  *components.SidebarModel
	list     *components.ItemListModel
	detail   *components.DetailModel
}

// NewApp creates a new App instance.
func NewApp(opts Options) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	lm := opts.Layout
	if lm == nil {
		lm = layout.New(layout.DefaultPreferences(), nil, logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	app := &App{
		store:     opts.Store,
		layout:    lm,
		logger:    logger,
		now:       now,
		notifier:  notifier,
		clipboard: copyFn,
		folders:   opts.Folders,
		sel:       todo.NewSelection(opts.Folders),
		stage:     layout.StageFolders,
		focus:     PaneSidebar,
		loading:   true,
		notify:    opts.Notify,
		spinner:   s,
		keymap:    DefaultKeymap(opts.VimMode),
		help:      help.New(),
		sidebar:   components.NewSidebar(),
		list:      components.NewItemList(),
		detail:    components.NewDetail(opts.MarkdownStyle),
	}

	if opts.InitialScope.Kind() != todo.ScopeNone {
		app.sel.Select(opts.InitialScope)
		app.stage = layout.StageItems
		app.focus = PaneList
	}

	app.list.SetFolders(app.folders)
	app.sidebar.SetCollapsed(lm.Collapsed())
	app.refresh()
	app.sidebar.SyncCursor()
	app.applyFocus()

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadItems(),
	)
}

// Selection returns the current selection.
func (a *App) Selection() todo.Selection { return a.sel }

// Items returns the cached item collection.
func (a *App) Items() []todo.Item { return a.items }

// Visible returns the items shown for the current scope.
func (a *App) Visible() []todo.Item {
	return todo.Filter(a.items, a.sel.Scope, a.now())
}

// Stage returns the compact-mode stage.
func (a *App) Stage() layout.Stage { return a.stage }

// Focus returns the focused pane.
func (a *App) Focus() Pane { return a.focus }

// Status returns the status bar message.
func (a *App) Status() string { return a.statusMsg }

// Err returns the last error shown in the status bar.
func (a *App) Err() error { return a.err }

// Loading reports whether the initial load is in flight.
func (a *App) Loading() bool { return a.loading }

// refresh pushes the current data and selection into the components.
func (a *App) refresh() {
	today := a.now()

	a.sidebar.SetData(components.BuildSidebarEntries(a.folders, func(scope todo.Scope) int {
		n := 0
		for _, it := range todo.Filter(a.items, scope, today) {
			if !it.IsDone {
				n++
			}
		}
		return n
	}))
	a.sidebar.SetActive(a.sel.Scope)

	a.list.SetToday(today)
	a.list.SetHeader(todo.LabelFor(a.sel.Scope, a.folders), a.sel.Scope.IsSmart())
	a.list.SetData(a.Visible())
	a.list.SetSelected(a.sel.ItemID)
	a.list.SetLoading(a.loading, a.spinner.View())

	if it, ok := todo.Find(a.items, a.sel.ItemID); ok {
		a.detail.SetItem(&it, todo.FolderName(a.folders, it.FolderID))
	} else {
		a.detail.SetItem(nil, "")
	}
}

// applyFocus syncs component focus with a.focus.
func (a *App) applyFocus() {
	a.sidebar.Blur()
	a.list.Blur()
	a.detail.Blur()
	switch a.focus {
	case PaneSidebar:
		a.sidebar.Focus()
	case PaneList:
		a.list.Focus()
	case PaneDetail:
		a.detail.Focus()
	}
}

// setFocus moves focus to p.
func (a *App) setFocus(p Pane) {
	a.focus = p
	a.applyFocus()
}

// paneForStage returns the pane visible at stage in compact mode.
func paneForStage(s layout.Stage) Pane {
	switch s {
	case layout.StageItems:
		return PaneList
	case layout.StageDetail:
		return PaneDetail
	}
	return PaneSidebar
}

// setStage moves the compact-mode stage. In compact mode focus follows it.
func (a *App) setStage(s layout.Stage) {
	a.stage = s
	if !a.layout.IsWide() {
		a.setFocus(paneForStage(s))
	}
}
