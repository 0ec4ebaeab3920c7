package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the single items table. quantity and price carry CHECK
// constraints as a last line of defense behind the façade's own validation.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL CHECK (length(trim(name)) > 0),
    quantity INTEGER NOT NULL CHECK (quantity >= 0),
    price REAL NOT NULL CHECK (price >= 0)
);
`

// ensureSchema creates the items table if it does not exist yet.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create items table: %w", err)
	}
	return nil
}
