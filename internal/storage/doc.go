// Package storage provides SQLite-based persistence for inventory items.
//
// The store is the single source of truth. It owns one table and is the only
// component that generates item ids.
//
// # Database Schema
//
//	items(
//	    id       INTEGER PRIMARY KEY AUTOINCREMENT,
//	    name     TEXT    NOT NULL CHECK (length(trim(name)) > 0),
//	    quantity INTEGER NOT NULL CHECK (quantity >= 0),
//	    price    REAL    NOT NULL CHECK (price >= 0)
//	)
//
// AUTOINCREMENT keeps ids strictly increasing, so an id is never reused after
// a delete. There are no other tables and no schema versioning; the table is
// created on open if it is missing.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage(ctx, "inventory.db")
//	if err != nil {
//	    // err wraps storage.ErrStorageUnavailable
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	id, err := db.Insert(ctx, "Pen", 3, 1.50)
//	err = db.Update(ctx, id, storage.ColumnQuantity, int64(10))
//	err = db.Delete(ctx, id)
//
//	rows, err := db.LoadAll(ctx)
//
// Every write is auto-committed before the call returns. Update and Delete on
// an absent id succeed without doing anything.
//
// # Constraint Errors
//
// CHECK constraint failures are reported as ErrConstraintViolation:
//
//	_, err := db.Insert(ctx, "Pen", -1, 1.0)
//	errors.Is(err, storage.ErrConstraintViolation) // true
//
// # Build Tags
//
// The storage package supports two build configurations:
//
// Pure Go Build (default, or purego tag):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build -tags "purego"
//
// CGO Build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo"
package storage
