package index

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/dshills/stockroom/internal/storage"
	"github.com/dshills/stockroom/pkg/types"
)

// Loader is the slice of storage.Storage needed to rebuild the index.
type Loader interface {
	LoadAll(ctx context.Context) ([]storage.Row, error)
}

// Index mirrors the item table in memory with two lookup structures:
// items by id, and the set of ids sharing each normalized name.
//
// Index is not safe for concurrent use; the caller serializes access.
type Index struct {
	byID   map[int64]*types.Item
	byName map[string]mapset.Set[int64]
}

// New creates an empty Index
func New() *Index {
	return &Index{
		byID:   make(map[int64]*types.Item),
		byName: make(map[string]mapset.Set[int64]),
	}
}

// Normalize returns the lookup key for a name: trimmed and case-folded.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add stores item under its id and adds the id to its name set.
// Items without an id are ignored.
func (x *Index) Add(item *types.Item) {
	if item == nil || item.ID == 0 {
		return
	}
	x.byID[item.ID] = item

	key := Normalize(item.Name)
	ids, ok := x.byName[key]
	if !ok {
		ids = mapset.NewThreadUnsafeSet[int64]()
		x.byName[key] = ids
	}
	ids.Add(item.ID)
}

// Remove drops item from both structures.
func (x *Index) Remove(item *types.Item) {
	if item == nil || item.ID == 0 {
		return
	}
	delete(x.byID, item.ID)
	x.unlinkName(item.ID, item.Name)
}

// Rename moves item from the name set of previousName to the set of its
// current name. Quantity and price changes never need this.
func (x *Index) Rename(item *types.Item, previousName string) {
	if item == nil || item.ID == 0 {
		return
	}
	x.unlinkName(item.ID, previousName)
	x.Add(item)
}

// unlinkName removes id from the set for name and prunes the set if it empties.
func (x *Index) unlinkName(id int64, name string) {
	key := Normalize(name)
	ids, ok := x.byName[key]
	if !ok {
		return
	}
	ids.Remove(id)
	if ids.Cardinality() == 0 {
		delete(x.byName, key)
	}
}

// Rebuild clears the index and replays every row from the loader.
// On error the index is left empty.
func (x *Index) Rebuild(ctx context.Context, loader Loader) error {
	clear(x.byID)
	clear(x.byName)

	rows, err := loader.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	for _, row := range rows {
		x.Add(&types.Item{
			ID:       row.ID,
			Name:     row.Name,
			Quantity: row.Quantity,
			Price:    row.Price,
		})
	}
	return nil
}

// Get returns the indexed item for id. The pointer is owned by the index.
func (x *Index) Get(id int64) (*types.Item, bool) {
	item, ok := x.byID[id]
	return item, ok
}

// IDsForName returns the ids whose normalized name equals key exactly.
// key must already be normalized.
func (x *Index) IDsForName(key string) []int64 {
	ids, ok := x.byName[key]
	if !ok {
		return nil
	}
	return ids.ToSlice()
}

// All returns every indexed item in unspecified order.
func (x *Index) All() []*types.Item {
	items := make([]*types.Item, 0, len(x.byID))
	for _, item := range x.byID {
		items = append(items, item)
	}
	return items
}

// Len returns the number of indexed items
func (x *Index) Len() int {
	return len(x.byID)
}

// NameKeys returns every normalized name currently in the name index.
func (x *Index) NameKeys() []string {
	keys := make([]string, 0, len(x.byName))
	for key := range x.byName {
		keys = append(keys, key)
	}
	return keys
}
