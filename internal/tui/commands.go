package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskdex/internal/todo"
)

type itemsLoadedMsg struct{ items []todo.Item }

type loadFailedMsg struct{ err error }

type itemCreatedMsg struct{ item todo.Item }

type createFailedMsg struct{ err error }

type toggleSavedMsg struct{ id int64 }

type toggleFailedMsg struct {
	id  int64
	err error
}

type statusMsg struct{ msg string }

type errMsg struct{ err error }

// loadItems fetches the full collection from the store.
func (a *App) loadItems() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		if store == nil {
			return loadFailedMsg{err: fmt.Errorf("no store configured")}
		}
		items, err := store.List(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return itemsLoadedMsg{items: items}
	}
}

// createItem inserts n into the store.
func (a *App) createItem(n todo.NewItem) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		it, err := store.Create(context.Background(), n)
		if err != nil {
			return createFailedMsg{err: err}
		}
		return itemCreatedMsg{item: it}
	}
}

// saveDone writes the done flag of id to the store.
func (a *App) saveDone(id int64, done bool) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		if err := store.SetDone(context.Background(), id, done); err != nil {
			return toggleFailedMsg{id: id, err: err}
		}
		return toggleSavedMsg{id: id}
	}
}

// notifyDue sends one desktop notification for undone items due today.
func (a *App) notifyDue(count int) tea.Cmd {
	notifier := a.notifier
	logger := a.logger
	return func() tea.Msg {
		body := fmt.Sprintf("%d items due today", count)
		if count == 1 {
			body = "1 item due today"
		}
		if err := notifier("taskdex", body); err != nil {
			logger.Warn("failed to send notification", "err", err)
		}
		return nil
	}
}

// copyTitle writes the title of it to the clipboard.
func (a *App) copyTitle(it todo.Item) tea.Cmd {
	copyFn := a.clipboard
	return func() tea.Msg {
		if err := copyFn(it.Title); err != nil {
			return errMsg{err: fmt.Errorf("failed to copy: %w", err)}
		}
		return statusMsg{msg: "Copied: " + it.Title}
	}
}
