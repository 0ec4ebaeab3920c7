// Package mcp exposes the inventory as Model Context Protocol (MCP) tools.
//
// The server speaks JSON-RPC 2.0 over stdio and registers these tools:
//   - add_item: create an item from name, quantity and price
//   - delete_item: remove an item by id
//   - set_quantity, set_price, rename_item: update one field in place
//   - get_item: fetch a single item by id
//   - find_items: name search (exact matches win over substring matches)
//   - list_items: every item ordered by id
//   - inventory_stats: stock totals for the whole inventory
//
// # Basic Usage
//
// The server is started by the serve command:
//
//	stockroom serve --db inventory.db
//
// Protocol messages are read from stdin and responses written to stdout,
// so all logging goes to stderr.
//
// # Tool: add_item
//
//	Request:
//	{
//	  "name": "add_item",
//	  "arguments": {"name": "Pen", "quantity": 3, "price": 1.5}
//	}
//
//	Response:
//	{
//	  "created": true,
//	  "item": {"id": 1, "name": "Pen", "quantity": 3, "price": 1.5}
//	}
//
// # Tool: find_items
//
//	Request:
//	{
//	  "name": "find_items",
//	  "arguments": {"query": "pen"}
//	}
//
//	Response:
//	{
//	  "query": "pen",
//	  "count": 1,
//	  "items": [{"id": 1, "name": "Pen", "quantity": 3, "price": 1.5}]
//	}
//
// # Errors
//
// Handlers return *MCPError values with JSON-RPC codes:
//
//	-32602  invalid params (missing argument, negative quantity or price, empty name)
//	-32603  internal error (the store rejected or failed a write)
//	-32001  no item with the given id
//
// A failed write leaves the inventory unchanged.
package mcp
