package api

import (
	"context"
	"fmt"

	"github.com/hy4ri/taskdex/internal/todo"
)

// Todos exposes a collection on the datastore as a todo.Store.
type Todos struct {
	client     *Client
	collection string
}

var _ todo.Store = (*Todos)(nil)

// NewTodos returns a store backed by collection. An empty collection name
// selects DefaultCollection.
func NewTodos(client *Client, collection string) *Todos {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Todos{client: client, collection: collection}
}

// List returns every item ordered by id.
func (t *Todos) List(ctx context.Context) ([]todo.Item, error) {
	var rows []TodoRow
	if err := t.client.Select(ctx, t.collection, "id.asc", &rows); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]todo.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.ToItem())
	}
	return items, nil
}

// Create inserts an item and returns the stored record.
func (t *Todos) Create(ctx context.Context, n todo.NewItem) (todo.Item, error) {
	record := RowFromItem(todo.Item{
		FolderID: n.FolderID,
		Title:    n.Title,
		Content:  n.Content,
		Date:     n.Date,
	})

	var row TodoRow
	if err := t.client.Insert(ctx, t.collection, record, &row); err != nil {
		return todo.Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	return row.ToItem(), nil
}

// SetDone updates the done flag of an item.
func (t *Todos) SetDone(ctx context.Context, id int64, done bool) error {
	if err := t.client.Update(ctx, t.collection, id, doneUpdate{IsDone: done}); err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	return nil
}
