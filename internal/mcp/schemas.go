package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     1,
	}
}

// addItemTool returns the tool definition for add_item
func addItemTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_item",
		Description: "Add a new item to the inventory and return it with its assigned id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Item name (surrounding whitespace is trimmed, must not be empty)",
				},
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "Units in stock",
					"minimum":     0,
				},
				"price": map[string]interface{}{
					"type":        "number",
					"description": "Unit price",
					"minimum":     0,
				},
			},
			Required: []string{"name", "quantity", "price"},
		},
	}
}

// deleteItemTool returns the tool definition for delete_item
func deleteItemTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_item",
		Description: "Delete an item by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Id of the item to delete"),
			},
			Required: []string{"id"},
		},
	}
}

// setQuantityTool returns the tool definition for set_quantity
func setQuantityTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_quantity",
		Description: "Set the quantity of an existing item",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Item id"),
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "New quantity",
					"minimum":     0,
				},
			},
			Required: []string{"id", "quantity"},
		},
	}
}

// setPriceTool returns the tool definition for set_price
func setPriceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_price",
		Description: "Set the unit price of an existing item",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Item id"),
				"price": map[string]interface{}{
					"type":        "number",
					"description": "New unit price",
					"minimum":     0,
				},
			},
			Required: []string{"id", "price"},
		},
	}
}

// renameItemTool returns the tool definition for rename_item
func renameItemTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rename_item",
		Description: "Rename an existing item",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Item id"),
				"name": map[string]interface{}{
					"type":        "string",
					"description": "New name (must not be empty)",
				},
			},
			Required: []string{"id", "name"},
		},
	}
}

// getItemTool returns the tool definition for get_item
func getItemTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_item",
		Description: "Look up a single item by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Item id"),
			},
			Required: []string{"id"},
		},
	}
}

// findItemsTool returns the tool definition for find_items
func findItemsTool() mcp.Tool {
	return mcp.Tool{
		Name: "find_items",
		Description: "Search items by name. Case-insensitive exact matches are returned if any exist, " +
			"otherwise all items whose name contains the query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Name or name fragment. An empty query matches every item",
				},
			},
			Required: []string{"query"},
		},
	}
}

// listItemsTool returns the tool definition for list_items
func listItemsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_items",
		Description: "List every item ordered by id",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// inventoryStatsTool returns the tool definition for inventory_stats
func inventoryStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "inventory_stats",
		Description: "Report stock totals across the whole inventory",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
