package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Item is a single stock line in the inventory.
type Item struct {
	ID       int64   `json:"id"` // 0 until assigned by the store
	Name     string  `json:"name" validate:"required"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// NewItem builds an unsaved Item after trimming the name and validating every field.
func NewItem(name string, quantity int64, price float64) (Item, error) {
	item := Item{
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Price:    price,
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate checks all field invariants at once.
func (i *Item) Validate() error {
	if err := validate.Struct(i); err != nil {
		return invalidArgument(err)
	}
	return nil
}

// SetName trims and assigns a new name.
func (i *Item) SetName(name string) error {
	trimmed, err := ValidateName(name)
	if err != nil {
		return err
	}
	i.Name = trimmed
	return nil
}

// SetQuantity assigns a new quantity, rejecting negative values.
func (i *Item) SetQuantity(quantity int64) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	return nil
}

// SetPrice assigns a new price, rejecting negative values and NaN.
func (i *Item) SetPrice(price float64) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	i.Price = price
	return nil
}

// String renders the item as a single display line.
func (i Item) String() string {
	return fmt.Sprintf("[ID %03d] %s | Quantity: %d | Price: $%.2f", i.ID, i.Name, i.Quantity, i.Price)
}

// ValidateName returns the trimmed name or an error if nothing is left after trimming.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := validate.Var(trimmed, "required"); err != nil {
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	return trimmed, nil
}

// ValidateQuantity rejects negative quantities.
func ValidateQuantity(quantity int64) error {
	if err := validate.Var(quantity, "gte=0"); err != nil {
		return fmt.Errorf("%w: quantity must be >= 0, got %d", ErrInvalidArgument, quantity)
	}
	return nil
}

// ValidatePrice rejects negative prices and NaN.
func ValidatePrice(price float64) error {
	if err := validate.Var(price, "gte=0"); err != nil {
		return fmt.Errorf("%w: price must be >= 0, got %v", ErrInvalidArgument, price)
	}
	return nil
}

// invalidArgument converts validator field errors into one ErrInvalidArgument.
func invalidArgument(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidArgument, strings.Join(fields, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " must not be empty"
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed on '%s'", field, fe.Tag())
	}
}
