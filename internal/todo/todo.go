// Package todo holds the folder and item model, scope selection, and the
// view filter that derives the visible item list.
package todo

import (
	"context"
	"time"
)

// DateLayout is the calendar date format used for item dates.
const DateLayout = "2006-01-02"

// Folder groups items. Folders are fixed for the lifetime of the process.
type Folder struct {
	ID   int64
	Name string
	Icon string
}

// Item is a single todo entry.
type Item struct {
	ID       int64
	FolderID int64
	Title    string
	Content  string
	Date     string // DateLayout, or "" when the item has no date
	IsDone   bool
}

// NewItem is the input for creating an item. The store assigns the ID.
type NewItem struct {
	FolderID int64
	Title    string
	Content  string
	Date     string
}

// Store is the source of truth for items. The in-memory collection held
// by the UI is a cache of List.
type Store interface {
	// List returns every item ordered by ID.
	List(ctx context.Context) ([]Item, error)

	// Create inserts an item and returns the stored record.
	Create(ctx context.Context, item NewItem) (Item, error)

	// SetDone updates the done flag of the item with the given ID.
	SetDone(ctx context.Context, id int64, done bool) error
}

// DefaultFolders returns the folders used when none are configured.
func DefaultFolders() []Folder {
	return []Folder{
		{ID: 1, Name: "Personal", Icon: "👤"},
		{ID: 2, Name: "Work", Icon: "💼"},
		{ID: 3, Name: "Shopping", Icon: "🛒"},
		{ID: 4, Name: "Projects", Icon: "📁"},
	}
}

// HasDate returns true if the item carries a parseable date.
func (i Item) HasDate() bool {
	_, ok := i.DateIn(time.Local)
	return ok
}

// DateIn parses the item date as midnight in loc.
func (i Item) DateIn(loc *time.Location) (time.Time, bool) {
	if i.Date == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, i.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ValidDate reports whether s is empty or a well-formed calendar date.
func ValidDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Find returns the item with the given ID.
func Find(items []Item, id int64) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Toggle returns a copy of items with the done flag of id flipped, along
// with the updated item. The input slice is left untouched.
func Toggle(items []Item, id int64) ([]Item, Item, bool) {
	for i := range items {
		if items[i].ID != id {
			continue
		}
		out := make([]Item, len(items))
		copy(out, items)
		out[i].IsDone = !out[i].IsDone
		return out, out[i], true
	}
	return items, Item{}, false
}
