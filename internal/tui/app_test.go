package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hy4ri/taskdex/internal/layout"
	"github.com/hy4ri/taskdex/internal/logging"
	"github.com/hy4ri/taskdex/internal/prefs"
	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui/components"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

type fakeStore struct {
	items  []todo.Item
	nextID int64

	listErr    error
	createErr  error
	setDoneErr error

	lists   int
	created []todo.NewItem
	done    map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items: []todo.Item{
			{ID: 1, FolderID: 1, Title: "Buy milk", Date: "2025-06-15"},
			{ID: 2, FolderID: 2, Title: "Write report", Date: "2025-06-18"},
			{ID: 3, FolderID: 1, Title: "Old errand", IsDone: true},
			{ID: 4, FolderID: 3, Title: "Someday"},
		},
		nextID: 100,
		done:   map[int64]bool{},
	}
}

func (s *fakeStore) List(context.Context) ([]todo.Item, error) {
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]todo.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, n todo.NewItem) (todo.Item, error) {
	s.created = append(s.created, n)
	if s.createErr != nil {
		return todo.Item{}, s.createErr
	}
	s.nextID++
	it := todo.Item{ID: s.nextID, FolderID: n.FolderID, Title: n.Title, Content: n.Content, Date: n.Date}
	s.items = append(s.items, it)
	return it, nil
}

func (s *fakeStore) SetDone(_ context.Context, id int64, done bool) error {
	if s.setDoneErr != nil {
		return s.setDoneErr
	}
	s.done[id] = done
	return nil
}

type harness struct {
	app       *App
	store     *fakeStore
	kv        *prefs.MemKV
	notified  []string
	clipboard []string
}

func newHarness(t *testing.T, width int, opts ...func(*Options)) *harness {
	t.Helper()

	h := &harness{store: newFakeStore(), kv: prefs.NewMem()}
	logger := logging.Discard()
	o := Options{
		Store:   h.store,
		Folders: todo.DefaultFolders(),
		Layout:  layout.New(layout.Load(h.kv), h.kv, logger),
		Logger:  logger,
		VimMode: true,
		Notify:  true,
		Now:     func() time.Time { return testNow },
		Notifier: func(_, message string) error {
			h.notified = append(h.notified, message)
			return nil
		},
		Clipboard: func(text string) error {
			h.clipboard = append(h.clipboard, text)
			return nil
		},
	}
	for _, fn := range opts {
		fn(&o)
	}

	h.app = NewApp(o)
	h.send(tea.WindowSizeMsg{Width: width, Height: 30})
	return h
}

// send feeds msg to the app and runs the resulting commands to completion.
func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	h.run(cmd)
}

// load runs the initial fetch.
func (h *harness) load() {
	h.run(h.app.loadItems())
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	// Store and clipboard commands return at once; cursor blink commands
	// wait on a timer and are dropped.
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var result tea.Msg
	select {
	case result = <-done:
	case <-time.After(100 * time.Millisecond):
		return
	}
	switch msg := result.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case itemsLoadedMsg, loadFailedMsg, itemCreatedMsg, createFailedMsg,
		toggleSavedMsg, toggleFailedMsg, statusMsg, errMsg,
		components.ScopeSelectedMsg, components.ItemSelectedMsg,
		components.ToggleRequestMsg, components.AddRequestMsg, components.BackMsg:
		h.send(msg)
	}
	// Timer-driven messages (spinner, cursor blink) are not replayed.
}

func (h *harness) key(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		h.send(msg)
	}
}

func (h *harness) mouse(action tea.MouseAction, button tea.MouseButton, x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
}

func TestLoadItems(t *testing.T) {
	h := newHarness(t, 120)
	require.True(t, h.app.Loading())

	h.load()

	assert.False(t, h.app.Loading())
	assert.Len(t, h.app.Items(), 4)
	assert.Equal(t, []int64{1, 3}, visibleIDs(h.app))
	assert.NoError(t, h.app.Err())
}

func TestLoadFailureShowsError(t *testing.T) {
	h := newHarness(t, 120)
	h.store.listErr = errors.New("connection refused")

	h.load()

	assert.False(t, h.app.Loading())
	assert.Empty(t, h.app.Items())
	require.Error(t, h.app.Err())
	assert.Contains(t, h.app.Status(), "connection refused")
	assert.Contains(t, h.app.View(), "connection refused")
}

func TestNotifiesOncePerSession(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.key("r")

	assert.Equal(t, 2, h.store.lists)
	assert.Equal(t, []string{"1 item due today"}, h.notified)
}

func TestNotifyDisabled(t *testing.T) {
	h := newHarness(t, 120, func(o *Options) { o.Notify = false })
	h.load()
	assert.Empty(t, h.notified)
}

func TestSelectScopeAndItem(t *testing.T) {
	h := newHarness(t, 120)
	h.load()

	h.send(components.ScopeSelectedMsg{Scope: todo.SmartScope(todo.SmartWeek)})
	sel := h.app.Selection()
	assert.True(t, sel.Scope.IsSmart())
	assert.Equal(t, int64(1), sel.LastFolderID)
	assert.Equal(t, []int64{1, 2}, visibleIDs(h.app))
	assert.Equal(t, PaneList, h.app.Focus())

	h.key("j", "enter")
	assert.Equal(t, int64(2), h.app.Selection().ItemID)
	assert.Equal(t, layout.StageDetail, h.app.Stage())

	// Switching scope clears the item selection.
	h.send(components.ScopeSelectedMsg{Scope: todo.FolderScope(3)})
	assert.Zero(t, h.app.Selection().ItemID)
	assert.Equal(t, int64(3), h.app.Selection().LastFolderID)
}

func TestToggleIsOptimistic(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.send(components.ScopeSelectedMsg{Scope: todo.FolderScope(1)})

	h.key("x")

	it, ok := todo.Find(h.app.Items(), 1)
	require.True(t, ok)
	assert.True(t, it.IsDone)
	assert.Equal(t, map[int64]bool{1: true}, h.store.done)
	assert.NoError(t, h.app.Err())
}

func TestToggleFailureKeepsLocalChange(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.send(components.ScopeSelectedMsg{Scope: todo.FolderScope(1)})
	h.store.setDoneErr = errors.New("timeout")

	h.key("x")

	it, _ := todo.Find(h.app.Items(), 1)
	assert.True(t, it.IsDone)
	require.Error(t, h.app.Err())
	assert.Contains(t, h.app.Status(), "timeout")
}

func TestToggleUnknownIDIsIgnored(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.send(components.ToggleRequestMsg{ID: 999})
	assert.Empty(t, h.store.done)
}

func TestAddToFolder(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.send(components.ScopeSelectedMsg{Scope: todo.FolderScope(2)})

	h.key("a", "Ship it", "tab", "2025-06-20", "enter")

	require.Len(t, h.store.created, 1)
	assert.Equal(t, todo.NewItem{FolderID: 2, Title: "Ship it", Date: "2025-06-20"}, h.store.created[0])
	assert.Equal(t, int64(101), h.app.Selection().ItemID)
	assert.Equal(t, layout.StageItems, h.app.Stage())
	assert.Contains(t, visibleIDs(h.app), int64(101))

	title, date := h.app.list.FormValues()
	assert.Empty(t, title)
	assert.Empty(t, date)
}

func TestAddUnderSmartViewUsesLastFolder(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.send(components.ScopeSelectedMsg{Scope: todo.FolderScope(3)})
	h.send(components.ScopeSelectedMsg{Scope: todo.SmartScope(todo.SmartToday)})

	h.key("a", "Tea", "enter")

	require.Len(t, h.store.created, 1)
	assert.Equal(t, int64(3), h.store.created[0].FolderID)
	assert.True(t, h.app.Selection().Scope.IsSmart())
}

func TestAddBlankTitleIsNoop(t *testing.T) {
	h := newHarness(t, 120)
	h.load()

	h.key("a", "   ", "enter")

	assert.Empty(t, h.store.created)
	assert.Len(t, h.app.Items(), 4)
}

func TestAddInvalidDate(t *testing.T) {
	h := newHarness(t, 120)
	h.load()

	h.key("a", "Tea", "tab", "tomorrow", "enter")

	assert.Empty(t, h.store.created)
	assert.Contains(t, h.app.Status(), todo.DateLayout)
}

func TestAddFailureKeepsInputs(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.store.createErr = errors.New("insert failed")

	h.key("a", "Tea", "enter")

	require.Error(t, h.app.Err())
	assert.Contains(t, h.app.Status(), "insert failed")
	title, _ := h.app.list.FormValues()
	assert.Equal(t, "Tea", title)
	assert.Len(t, h.app.Items(), 4)
}

func TestAddEscapeStopsForm(t *testing.T) {
	h := newHarness(t, 120)
	h.load()

	h.key("a")
	require.True(t, h.app.list.Adding())
	h.key("q")
	assert.True(t, h.app.list.Adding(), "q is typed into the form")

	h.key("esc")
	assert.False(t, h.app.list.Adding())
}

func TestCompactNavigation(t *testing.T) {
	h := newHarness(t, 80)
	h.load()
	require.False(t, h.app.layout.IsWide())
	assert.Equal(t, layout.StageFolders, h.app.Stage())
	assert.Equal(t, PaneSidebar, h.app.Focus())

	h.key("enter")
	assert.Equal(t, layout.StageItems, h.app.Stage())
	assert.Equal(t, PaneList, h.app.Focus())

	h.key("enter")
	assert.Equal(t, layout.StageDetail, h.app.Stage())
	assert.Equal(t, PaneDetail, h.app.Focus())
	assert.Equal(t, int64(1), h.app.Selection().ItemID)

	h.key("esc")
	assert.Equal(t, layout.StageItems, h.app.Stage())
	h.key("esc")
	assert.Equal(t, layout.StageFolders, h.app.Stage())
	h.key("esc")
	assert.Equal(t, layout.StageFolders, h.app.Stage())
}

func TestCompactTitleClickGoesBack(t *testing.T) {
	h := newHarness(t, 80)
	h.load()
	h.key("enter")
	require.Equal(t, layout.StageItems, h.app.Stage())

	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 4, 0)
	assert.Equal(t, layout.StageFolders, h.app.Stage())
}

func TestInitialScope(t *testing.T) {
	h := newHarness(t, 80, func(o *Options) {
		o.InitialScope = todo.SmartScope(todo.SmartAll)
	})
	h.load()
	assert.Equal(t, layout.StageItems, h.app.Stage())
	assert.Equal(t, []int64{1, 2, 3, 4}, visibleIDs(h.app))
}

func TestWideSwitchPane(t *testing.T) {
	h := newHarness(t, 120)
	assert.Equal(t, PaneSidebar, h.app.Focus())
	h.key("tab")
	assert.Equal(t, PaneList, h.app.Focus())
	h.key("tab")
	assert.Equal(t, PaneDetail, h.app.Focus())
	h.key("esc")
	assert.Equal(t, PaneList, h.app.Focus())
}

func TestDragHandle(t *testing.T) {
	h := newHarness(t, 120)

	// Default sidebar width is 28, so the first handle sits at column 28.
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 28, 5)
	require.True(t, h.app.layout.Resizing())
	assert.Contains(t, h.app.View(), "RESIZE")

	h.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 40, 5)
	h.mouse(tea.MouseActionRelease, tea.MouseButtonNone, 90, 5)

	assert.False(t, h.app.layout.Resizing())
	assert.Equal(t, 40, h.app.layout.Preferences().LeftWidth)
	v, ok := h.kv.Get(layout.KeyLeftWidth)
	require.True(t, ok)
	assert.Equal(t, "40", v)
}

func TestDragClampsToRange(t *testing.T) {
	h := newHarness(t, 120)
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 28, 5)
	h.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 2, 5)
	h.mouse(tea.MouseActionRelease, tea.MouseButtonNone, 2, 5)
	assert.Equal(t, layout.MinLeftWidth, h.app.layout.Preferences().LeftWidth)
}

func TestClickSelectsScope(t *testing.T) {
	h := newHarness(t, 120)
	h.load()

	// Sidebar rows start after a two line header: three smart views, a
	// separator, then the folders.
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 3, 2+5)

	id, ok := h.app.Selection().Scope.FolderID()
	require.True(t, ok)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, PaneList, h.app.Focus())
}

func TestClickCheckboxToggles(t *testing.T) {
	h := newHarness(t, 120)
	h.load()

	listStart := 28 + layout.HandleWidth
	// The list header is three lines; column 1 is inside the checkbox.
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, listStart+1, 3)

	it, _ := todo.Find(h.app.Items(), 1)
	assert.True(t, it.IsDone)
}

func TestCollapseAndStep(t *testing.T) {
	h := newHarness(t, 120)

	h.key(">")
	assert.Equal(t, 30, h.app.layout.Preferences().LeftWidth)
	h.key("L")
	assert.Equal(t, 38, h.app.layout.Preferences().LeftWidth)

	h.key("[")
	assert.True(t, h.app.layout.Collapsed())
	v, _ := h.kv.Get(layout.KeyLeftCollapsed)
	assert.Equal(t, "true", v)

	// The stored width survives collapsing.
	h.key("[")
	assert.False(t, h.app.layout.Collapsed())
	assert.Equal(t, 38, h.app.layout.Preferences().LeftWidth)

	h.key("tab", "<")
	assert.InDelta(t, 0.38, h.app.layout.Preferences().MidRatio, 1e-9)
}

func TestCompactIgnoresResizeKeys(t *testing.T) {
	h := newHarness(t, 80)
	before := h.app.layout.Preferences()

	h.key(">", "L", "[", "<", "H")

	assert.Equal(t, before, h.app.layout.Preferences())
	assert.False(t, h.app.layout.Collapsed())
	for _, k := range []string{layout.KeyLeftWidth, layout.KeyMidRatio, layout.KeyLeftCollapsed} {
		_, ok := h.kv.Get(k)
		assert.False(t, ok, k)
	}
}

func TestCopyTitle(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	h.key("tab", "y")

	assert.Equal(t, []string{"Buy milk"}, h.clipboard)
	assert.Equal(t, "Copied: Buy milk", h.app.Status())
}

func TestCopyFailure(t *testing.T) {
	h := newHarness(t, 120, func(o *Options) {
		o.Clipboard = func(string) error { return errors.New("no clipboard") }
	})
	h.load()
	h.key("tab", "y")

	require.Error(t, h.app.Err())
	assert.Contains(t, h.app.Status(), "no clipboard")
}

func TestQuit(t *testing.T) {
	h := newHarness(t, 120)
	_, cmd := h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersPanes(t *testing.T) {
	h := newHarness(t, 120)
	h.load()
	out := h.app.View()
	assert.Contains(t, out, "Lists")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Detail")

	h.send(tea.WindowSizeMsg{Width: 60, Height: 20})
	out = h.app.View()
	assert.Contains(t, out, "Lists")
	assert.NotContains(t, out, "Detail")
}

func visibleIDs(a *App) []int64 {
	out := []int64{}
	for _, it := range a.Visible() {
		out = append(out, it.ID)
	}
	return out
}
