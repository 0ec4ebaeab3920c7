package storage

import (
	"context"
	"errors"
)

var (
	// ErrConstraintViolation is returned when the table rejects a row, e.g. a negative quantity.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStorageUnavailable is returned when the database cannot be opened or prepared
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnknownColumn is returned by Update for a column outside the items table
	ErrUnknownColumn = errors.New("unknown column")
)

// Storage defines the durable item table. It is the single source of truth
// and the only generator of item ids.
type Storage interface {
	// Insert stores a new row and returns the id assigned to it.
	Insert(ctx context.Context, name string, quantity int64, price float64) (int64, error)
	// Update writes exactly one column of an existing row. Absent ids are a no-op.
	Update(ctx context.Context, id int64, column Column, value any) error
	// Delete removes a row. Absent ids are a no-op.
	Delete(ctx context.Context, id int64) error
	// LoadAll returns every row in unspecified order.
	LoadAll(ctx context.Context) ([]Row, error)

	Close() error
}

// Column names one updatable column of the items table
type Column string

const (
	ColumnName     Column = "name"
	ColumnQuantity Column = "quantity"
	ColumnPrice    Column = "price"
)

// Valid reports whether c is an updatable column.
func (c Column) Valid() bool {
	switch c {
	case ColumnName, ColumnQuantity, ColumnPrice:
		return true
	default:
		return false
	}
}

// Row is one stored item as read back from the table
type Row struct {
	ID       int64
	Name     string
	Quantity int64
	Price    float64
}
