// Package types provides the shared Item entity for the stockroom inventory.
//
// An Item is a named stock line with a quantity and a unit price:
//
//	item, err := types.NewItem("  Pen ", 3, 1.5)
//	// item.Name == "Pen", item.ID == 0 until the store assigns one
//
// # Validation
//
// Every mutator validates its input and returns an error wrapping
// ErrInvalidArgument instead of clamping:
//
//	if err := item.SetQuantity(-1); errors.Is(err, types.ErrInvalidArgument) {
//	    // item.Quantity is unchanged
//	}
//
// The standalone ValidateName, ValidateQuantity and ValidatePrice functions let
// callers check a value before any side effect (for example a store write).
//
// Rules:
//   - Name is trimmed of surrounding whitespace and must not be empty
//   - Quantity must be >= 0
//   - Price must be >= 0 (NaN is rejected)
//
// Names are not unique. Two items may share a name and are told apart by ID.
package types
