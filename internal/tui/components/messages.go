package components

import "github.com/hy4ri/taskdex/internal/todo"

// ScopeSelectedMsg is emitted when a folder or smart view is chosen in the
// sidebar.
type ScopeSelectedMsg struct {
	Scope todo.Scope
}

// ItemSelectedMsg is emitted when an item is opened.
type ItemSelectedMsg struct {
	ID int64
}

// ToggleRequestMsg asks the app to flip an item's done flag.
type ToggleRequestMsg struct {
	ID int64
}

// AddRequestMsg carries the add form contents. Title is not trimmed.
type AddRequestMsg struct {
	Title string
	Date  string
}

// BackMsg asks the app to move one stage back.
type BackMsg struct{}
