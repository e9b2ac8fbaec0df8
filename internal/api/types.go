// Package api provides a client for the hosted todo datastore and an
// adapter that exposes it as a todo.Store.
package api

import "github.com/hy4ri/taskdex/internal/todo"

// DefaultCollection is the table items are stored in.
const DefaultCollection = "todos"

// TodoRow is the wire shape of an item.
type TodoRow struct {
	ID       int64   `json:"id,omitempty"`
	FolderID int64   `json:"folder_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Date     *string `json:"date"`
	IsDone   bool    `json:"is_done"`
}

// ToItem converts a row to the domain item.
func (r TodoRow) ToItem() todo.Item {
	it := todo.Item{
		ID:       r.ID,
		FolderID: r.FolderID,
		Title:    r.Title,
		Content:  r.Content,
		IsDone:   r.IsDone,
	}
	if r.Date != nil {
		it.Date = *r.Date
	}
	return it
}

// RowFromItem converts a domain item to its wire shape.
func RowFromItem(it todo.Item) TodoRow {
	r := TodoRow{
		ID:       it.ID,
		FolderID: it.FolderID,
		Title:    it.Title,
		Content:  it.Content,
		IsDone:   it.IsDone,
	}
	if it.Date != "" {
		d := it.Date
		r.Date = &d
	}
	return r
}

// doneUpdate is the PATCH body for toggling an item.
type doneUpdate struct {
	IsDone bool `json:"is_done"`
}
