// Package index keeps the in-memory mirror of the item table.
//
// Two structures are maintained:
//
//   - by id: id -> *types.Item, one entry per stored row
//   - by name: Normalize(name) -> set of ids sharing that name
//
// A name set is deleted as soon as it becomes empty, so the name map never
// holds empty sets. Raw names are never used as keys.
//
// The index is derived state. It is rebuilt from storage with Rebuild and
// must only be updated after the matching store write has succeeded:
//
//	x := index.New()
//	if err := x.Rebuild(ctx, store); err != nil {
//	    return err
//	}
//
//	id, err := store.Insert(ctx, "Pen", 3, 1.5)
//	if err != nil {
//	    return err // index untouched
//	}
//	x.Add(&types.Item{ID: id, Name: "Pen", Quantity: 3, Price: 1.5})
package index
