// Package store provides the local item backend used when taskdex runs
// without a hosted datastore.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/hy4ri/taskdex/internal/todo"
)

// ErrNotFound is returned when an update targets a missing item.
var ErrNotFound = errors.New("item not found")

// SQLite implements todo.Store on a single-file database.
type SQLite struct {
	db *sql.DB
}

var _ todo.Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			folder_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			date TEXT,
			is_done INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_folder ON todos(folder_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// List returns every item ordered by id.
func (s *SQLite) List(ctx context.Context) ([]todo.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, folder_id, title, content, date, is_done FROM todos ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]todo.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Create inserts an item and returns the stored row.
func (s *SQLite) Create(ctx context.Context, n todo.NewItem) (todo.Item, error) {
	var date sql.NullString
	if n.Date != "" {
		date = sql.NullString{String: n.Date, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (folder_id, title, content, date, is_done) VALUES (?, ?, ?, ?, 0)`,
		n.FolderID, n.Title, n.Content, date)
	if err != nil {
		return todo.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return todo.Item{}, fmt.Errorf("failed to read new item id: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, folder_id, title, content, date, is_done FROM todos WHERE id = ?`, id)
	return scanItem(row)
}

// SetDone updates the done flag of an item.
func (s *SQLite) SetDone(ctx context.Context, id int64, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET is_done = ? WHERE id = ?`, done, id)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update item %d: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (todo.Item, error) {
	var (
		it   todo.Item
		date sql.NullString
	)
	if err := sc.Scan(&it.ID, &it.FolderID, &it.Title, &it.Content, &date, &it.IsDone); err != nil {
		return todo.Item{}, fmt.Errorf("failed to scan item: %w", err)
	}
	it.Date = date.String
	return it, nil
}
