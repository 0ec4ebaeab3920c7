package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// One long-lived connection for the whole process. This also keeps
	// a ":memory:" database alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage opens dbPath and makes sure the items table exists.
// Every failure wraps ErrStorageUnavailable.
func NewSQLiteStorage(ctx context.Context, dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database %s: %w", ErrStorageUnavailable, dbPath, err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Insert adds a row and returns the id SQLite assigned to it
func (s *SQLiteStorage) Insert(ctx context.Context, name string, quantity int64, price float64) (int64, error) {
	query := `INSERT INTO items (name, quantity, price) VALUES (?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, name, quantity, price)
	if err != nil {
		return 0, wrapWriteError("insert item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// Update writes one column of row id. An absent id is a no-op.
func (s *SQLiteStorage) Update(ctx context.Context, id int64, column Column, value any) error {
	if !column.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	// column is one of a closed set of identifiers, never user input.
	query := fmt.Sprintf(`UPDATE items SET %s = ? WHERE id = ?`, column)
	if _, err := s.db.ExecContext(ctx, query, value, id); err != nil {
		return wrapWriteError(fmt.Sprintf("update item %d %s", id, column), err)
	}
	return nil
}

// Delete removes row id if it exists
func (s *SQLiteStorage) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// LoadAll reads every row. Order is unspecified.
func (s *SQLiteStorage) LoadAll(ctx context.Context) ([]Row, error) {
	query := `SELECT id, name, quantity, price FROM items`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Name, &row.Quantity, &row.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

// wrapWriteError maps driver constraint failures onto ErrConstraintViolation
func wrapWriteError(op string, err error) error {
	if isConstraintError(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrConstraintViolation, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
