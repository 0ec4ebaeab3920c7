package inventory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/stockroom/internal/index"
	"github.com/dshills/stockroom/internal/storage"
	"github.com/dshills/stockroom/pkg/types"
)

// Inventory is the CRUD and search API over the item store.
// Writes go to the store first; the index is updated only after the store
// write succeeds. Reads are served from the index alone.
type Inventory struct {
	mu    sync.RWMutex
	store storage.Storage
	idx   *index.Index
	log   *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Option configures an Inventory
type Option func(*Inventory)

// WithLogger sets the logger used for mutation and failure records.
func WithLogger(log *slog.Logger) Option {
	return func(inv *Inventory) {
		if log != nil {
			inv.log = log
		}
	}
}

// Stats summarizes the current stock
type Stats struct {
	Items int     `json:"items"`
	Units int64   `json:"units"`
	Value float64 `json:"value"`
}

// New takes ownership of store and builds the index from its contents.
// If the rebuild fails the store is closed and the error returned.
func New(ctx context.Context, store storage.Storage, opts ...Option) (*Inventory, error) {
	inv := &Inventory{
		store: store,
		idx:   index.New(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(inv)
	}

	if err := inv.idx.Rebuild(ctx, store); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	inv.log.Debug("inventory loaded", "items", inv.idx.Len())
	return inv, nil
}

// Close releases the store. Only the first call has any effect.
func (inv *Inventory) Close() error {
	inv.closeOnce.Do(func() {
		inv.mu.Lock()
		defer inv.mu.Unlock()
		inv.closeErr = inv.store.Close()
	})
	return inv.closeErr
}

// Create stores a new item and returns it with its assigned id.
func (inv *Inventory) Create(ctx context.Context, name string, quantity int64, price float64) (types.Item, error) {
	item, err := types.NewItem(name, quantity, price)
	if err != nil {
		return types.Item{}, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	id, err := inv.store.Insert(ctx, item.Name, item.Quantity, item.Price)
	if err != nil {
		inv.logWriteFailure(ctx, "create", 0, err)
		return types.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	item.ID = id
	stored := item
	inv.idx.Add(&stored)

	inv.log.DebugContext(ctx, "item created", "id", id, "name", item.Name)
	return item, nil
}

// Delete removes the item with id. It returns false, without touching the
// store, when no such item exists.
func (inv *Inventory) Delete(ctx context.Context, id int64) (bool, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, ok := inv.idx.Get(id)
	if !ok {
		return false, nil
	}

	if err := inv.store.Delete(ctx, id); err != nil {
		inv.logWriteFailure(ctx, "delete", id, err)
		return false, fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	inv.idx.Remove(item)

	inv.log.DebugContext(ctx, "item deleted", "id", id)
	return true, nil
}

// SetQuantity replaces the quantity of item id.
func (inv *Inventory) SetQuantity(ctx context.Context, id int64, quantity int64) (bool, error) {
	if err := types.ValidateQuantity(quantity); err != nil {
		return false, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, ok := inv.idx.Get(id)
	if !ok {
		return false, nil
	}

	if err := inv.store.Update(ctx, id, storage.ColumnQuantity, quantity); err != nil {
		inv.logWriteFailure(ctx, "set quantity", id, err)
		return false, fmt.Errorf("failed to set quantity of item %d: %w", id, err)
	}
	if err := item.SetQuantity(quantity); err != nil {
		return false, err
	}

	inv.log.DebugContext(ctx, "quantity updated", "id", id, "quantity", quantity)
	return true, nil
}

// SetPrice replaces the price of item id.
func (inv *Inventory) SetPrice(ctx context.Context, id int64, price float64) (bool, error) {
	if err := types.ValidatePrice(price); err != nil {
		return false, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, ok := inv.idx.Get(id)
	if !ok {
		return false, nil
	}

	if err := inv.store.Update(ctx, id, storage.ColumnPrice, price); err != nil {
		inv.logWriteFailure(ctx, "set price", id, err)
		return false, fmt.Errorf("failed to set price of item %d: %w", id, err)
	}
	if err := item.SetPrice(price); err != nil {
		return false, err
	}

	inv.log.DebugContext(ctx, "price updated", "id", id, "price", price)
	return true, nil
}

// Rename gives item id a new name and moves it in the name index.
func (inv *Inventory) Rename(ctx context.Context, id int64, name string) (bool, error) {
	trimmed, err := types.ValidateName(name)
	if err != nil {
		return false, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, ok := inv.idx.Get(id)
	if !ok {
		return false, nil
	}

	if err := inv.store.Update(ctx, id, storage.ColumnName, trimmed); err != nil {
		inv.logWriteFailure(ctx, "rename", id, err)
		return false, fmt.Errorf("failed to rename item %d: %w", id, err)
	}

	previous := item.Name
	if err := item.SetName(trimmed); err != nil {
		return false, err
	}
	inv.idx.Rename(item, previous)

	inv.log.DebugContext(ctx, "item renamed", "id", id, "from", previous, "to", trimmed)
	return true, nil
}

// GetByID returns a copy of item id.
func (inv *Inventory) GetByID(id int64) (types.Item, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	item, ok := inv.idx.Get(id)
	if !ok {
		return types.Item{}, false
	}
	return *item, true
}

// FindByName returns the items whose normalized name equals the normalized
// query. Only when there is no exact match does it fall back to every item
// whose normalized name contains the query. The two tiers are never mixed.
// Results are ordered by id.
func (inv *Inventory) FindByName(query string) []types.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	key := index.Normalize(query)

	found := make([]types.Item, 0)
	for _, id := range inv.idx.IDsForName(key) {
		if item, ok := inv.idx.Get(id); ok {
			found = append(found, *item)
		}
	}

	if len(found) == 0 {
		for _, item := range inv.idx.All() {
			if strings.Contains(index.Normalize(item.Name), key) {
				found = append(found, *item)
			}
		}
	}

	sortByID(found)
	return found
}

// ListAll returns every item ordered by ascending id.
func (inv *Inventory) ListAll() []types.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	items := make([]types.Item, 0, inv.idx.Len())
	for _, item := range inv.idx.All() {
		items = append(items, *item)
	}
	sortByID(items)
	return items
}

// Stats totals units and stock value across every item.
func (inv *Inventory) Stats() Stats {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var stats Stats
	for _, item := range inv.idx.All() {
		stats.Items++
		stats.Units += item.Quantity
		stats.Value += float64(item.Quantity) * item.Price
	}
	return stats
}

// logWriteFailure records a failed store write. Constraint violations mean
// validation let a bad value through, so they are logged as errors.
func (inv *Inventory) logWriteFailure(ctx context.Context, op string, id int64, err error) {
	if errors.Is(err, storage.ErrConstraintViolation) {
		inv.log.ErrorContext(ctx, "store rejected a validated value", "op", op, "id", id, "error", err)
		return
	}
	inv.log.ErrorContext(ctx, "store write failed", "op", op, "id", id, "error", err)
}

func sortByID(items []types.Item) {
	slices.SortFunc(items, func(a, b types.Item) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
