// Package menu is the interactive text shell over the inventory façade.
// It owns all prompting, parsing and formatting; the façade never does I/O.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/stockroom/internal/inventory"
	"github.com/dshills/stockroom/pkg/types"
)

// Inventory is the façade surface the menu drives
type Inventory interface {
	Create(ctx context.Context, name string, quantity int64, price float64) (types.Item, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SetQuantity(ctx context.Context, id int64, quantity int64) (bool, error)
	SetPrice(ctx context.Context, id int64, price float64) (bool, error)
	Rename(ctx context.Context, id int64, name string) (bool, error)
	FindByName(query string) []types.Item
	ListAll() []types.Item
	Stats() inventory.Stats
}

const banner = "=== Stockroom Inventory Manager (SQLite) ==="

const options = `
------------------------------
1) Add item
2) Delete item (by ID)
3) Update quantity (by ID)
4) Update price (by ID)
5) Rename item (by ID)
6) Search by name
7) Show all
8) Stock summary
0) Exit
------------------------------`

// errInput marks a line the user typed that could not be parsed
var errInput = errors.New("bad value")

// errQuit is returned by prompt when input ends
var errQuit = errors.New("input closed")

// Menu runs the read-eval-print loop
type Menu struct {
	inv Inventory
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Menu reading commands from in and writing to out.
func New(inv Inventory, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		inv: inv,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loops until the user exits, input ends, or ctx is cancelled.
// Bad input is reported and the loop continues; store failures end the
// loop and are returned.
func (m *Menu) Run(ctx context.Context) error {
	m.println(banner)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.println(options)
		choice, err := m.prompt("Choose an option: ")
		if errors.Is(err, errQuit) {
			m.println("Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			m.println("Goodbye!")
			return nil
		}

		err = m.dispatch(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			m.println("Goodbye!")
			return nil
		case errors.Is(err, errInput), errors.Is(err, types.ErrInvalidArgument):
			m.printf("Invalid input: %v\n", err)
		default:
			return err
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addItem(ctx)
	case "2":
		return m.deleteItem(ctx)
	case "3":
		return m.updateQuantity(ctx)
	case "4":
		return m.updatePrice(ctx)
	case "5":
		return m.renameItem(ctx)
	case "6":
		return m.search()
	case "7":
		m.showAll()
		return nil
	case "8":
		m.showStats()
		return nil
	default:
		m.println("Unknown option. Try again.")
		return nil
	}
}

func (m *Menu) addItem(ctx context.Context) error {
	name, err := m.prompt("Name: ")
	if err != nil {
		return err
	}
	quantity, err := m.promptInt("Quantity (integer >= 0): ")
	if err != nil {
		return err
	}
	price, err := m.promptFloat("Price (>= 0): ")
	if err != nil {
		return err
	}

	item, err := m.inv.Create(ctx, name, quantity, price)
	if err != nil {
		return err
	}
	m.println("✓ Item added:")
	m.println(item.String())
	return nil
}

func (m *Menu) deleteItem(ctx context.Context) error {
	id, err := m.promptInt("ID of the item to delete: ")
	if err != nil {
		return err
	}
	ok, err := m.inv.Delete(ctx, id)
	if err != nil {
		return err
	}
	m.report(ok, "✓ Deleted")
	return nil
}

func (m *Menu) updateQuantity(ctx context.Context) error {
	id, err := m.promptInt("Item ID: ")
	if err != nil {
		return err
	}
	quantity, err := m.promptInt("New quantity (>= 0): ")
	if err != nil {
		return err
	}
	ok, err := m.inv.SetQuantity(ctx, id, quantity)
	if err != nil {
		return err
	}
	m.report(ok, "✓ Updated")
	return nil
}

func (m *Menu) updatePrice(ctx context.Context) error {
	id, err := m.promptInt("Item ID: ")
	if err != nil {
		return err
	}
	price, err := m.promptFloat("New price (>= 0): ")
	if err != nil {
		return err
	}
	ok, err := m.inv.SetPrice(ctx, id, price)
	if err != nil {
		return err
	}
	m.report(ok, "✓ Updated")
	return nil
}

func (m *Menu) renameItem(ctx context.Context) error {
	id, err := m.promptInt("Item ID: ")
	if err != nil {
		return err
	}
	name, err := m.prompt("New name: ")
	if err != nil {
		return err
	}
	ok, err := m.inv.Rename(ctx, id, name)
	if err != nil {
		return err
	}
	m.report(ok, "✓ Updated")
	return nil
}

func (m *Menu) search() error {
	query, err := m.prompt("Search by name: ")
	if err != nil {
		return err
	}
	results := m.inv.FindByName(query)
	if len(results) == 0 {
		m.println("✗ No matches.")
		return nil
	}
	m.printf("✓ %d item(s) found:\n", len(results))
	for _, item := range results {
		m.println(item.String())
	}
	return nil
}

func (m *Menu) showAll() {
	items := m.inv.ListAll()
	if len(items) == 0 {
		m.println("Inventory is empty.")
		return
	}
	for _, item := range items {
		m.println(item.String())
	}
}

func (m *Menu) showStats() {
	stats := m.inv.Stats()
	m.printf("Items: %d | Units: %d | Stock value: $%.2f\n", stats.Items, stats.Units, stats.Value)
}

func (m *Menu) report(ok bool, success string) {
	if ok {
		m.println(success)
		return
	}
	m.println("✗ ID not found")
}

// prompt writes label and returns the next trimmed input line.
func (m *Menu) prompt(label string) (string, error) {
	_, _ = io.WriteString(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) promptInt(label string) (int64, error) {
	line, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", errInput, line)
	}
	return n, nil
}

func (m *Menu) promptFloat(label string) (float64, error) {
	line, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errInput, line)
	}
	return f, nil
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}
