// Package inventory is the CRUD and search façade over the item store.
//
// Each item moves through: nonexistent -> persisted -> (mutated)* -> deleted.
// Every mutating call writes the store first and touches the in-memory index
// only after that write succeeds, so memory never runs ahead of disk:
//
//	store, err := storage.NewSQLiteStorage(ctx, "inventory.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inv, err := inventory.New(ctx, store, inventory.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err) // index could not be built
//	}
//	defer inv.Close()
//
//	pen, err := inv.Create(ctx, "Pen", 3, 1.50)
//	ok, err := inv.SetQuantity(ctx, pen.ID, 10)
//	ok, err = inv.Rename(ctx, pen.ID, "Blue Pen")
//
// # Errors
//
//   - types.ErrInvalidArgument: negative quantity/price or empty name; nothing changed
//   - false return: the id does not exist; nothing changed
//   - storage.ErrConstraintViolation: the table rejected a value validation let through
//   - any other store error is returned wrapped; the index is left as it was
//
// # Search
//
// FindByName has two tiers. An exact match on the normalized name (trimmed,
// lower-cased) wins outright. Only when there is none does it scan for
// names containing the query. The tiers are never combined:
//
//	// items: "Pen" (1), "Pencil" (2)
//	inv.FindByName("pen")    // [1]
//	inv.FindByName("penc")   // [2]
//
// Reads return copies and never reach the store.
package inventory
