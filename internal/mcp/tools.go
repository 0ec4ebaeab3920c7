package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/stockroom/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeItemNotFound  = -32001 // No item with the given id
)

// handleAddItem handles the add_item tool invocation
func (s *Server) handleAddItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	quantity, err := requireInt(args, "quantity")
	if err != nil {
		return nil, err
	}
	price, err := requireNumber(args, "price")
	if err != nil {
		return nil, err
	}

	item, err := s.inv.Create(ctx, name, quantity, price)
	if err != nil {
		return nil, s.operationError(ctx, "add_item", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"created": true,
		"item":    item,
	})), nil
}

// handleDeleteItem handles the delete_item tool invocation
func (s *Server) handleDeleteItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireInt(args, "id")
	if err != nil {
		return nil, err
	}

	ok, err := s.inv.Delete(ctx, id)
	if err != nil {
		return nil, s.operationError(ctx, "delete_item", err)
	}
	if !ok {
		return nil, itemNotFound(id)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"deleted": true,
		"id":      id,
	})), nil
}

// handleSetQuantity handles the set_quantity tool invocation
func (s *Server) handleSetQuantity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireInt(args, "id")
	if err != nil {
		return nil, err
	}
	quantity, err := requireInt(args, "quantity")
	if err != nil {
		return nil, err
	}

	ok, err := s.inv.SetQuantity(ctx, id, quantity)
	return s.updateResult(ctx, "set_quantity", id, ok, err)
}

// handleSetPrice handles the set_price tool invocation
func (s *Server) handleSetPrice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireInt(args, "id")
	if err != nil {
		return nil, err
	}
	price, err := requireNumber(args, "price")
	if err != nil {
		return nil, err
	}

	ok, err := s.inv.SetPrice(ctx, id, price)
	return s.updateResult(ctx, "set_price", id, ok, err)
}

// handleRenameItem handles the rename_item tool invocation
func (s *Server) handleRenameItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireInt(args, "id")
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}

	ok, err := s.inv.Rename(ctx, id, name)
	return s.updateResult(ctx, "rename_item", id, ok, err)
}

// handleGetItem handles the get_item tool invocation
func (s *Server) handleGetItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireInt(args, "id")
	if err != nil {
		return nil, err
	}

	item, ok := s.inv.GetByID(id)
	if !ok {
		return nil, itemNotFound(id)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"item": item,
	})), nil
}

// handleFindItems handles the find_items tool invocation
func (s *Server) handleFindItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	query, ok := args["query"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "query parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing or not a string",
		})
	}

	items := s.inv.FindByName(query)
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query": query,
		"count": len(items),
		"items": items,
	})), nil
}

// handleListItems handles the list_items tool invocation
func (s *Server) handleListItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.inv.ListAll()
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"count": len(items),
		"items": items,
	})), nil
}

// handleInventoryStats handles the inventory_stats tool invocation
func (s *Server) handleInventoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.inv.Stats()
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"items":       stats.Items,
		"units":       stats.Units,
		"stock_value": fmt.Sprintf("%.2f", stats.Value),
	})), nil
}

// updateResult turns the outcome of an in-place update into a tool result
// carrying the item as it is now.
func (s *Server) updateResult(ctx context.Context, tool string, id int64, ok bool, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return nil, s.operationError(ctx, tool, err)
	}
	if !ok {
		return nil, itemNotFound(id)
	}

	// a concurrent delete_item may have removed it since the update
	item, ok := s.inv.GetByID(id)
	if !ok {
		return nil, itemNotFound(id)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"updated": true,
		"item":    item,
	})), nil
}

// operationError maps a façade error onto an MCP error code.
func (s *Server) operationError(ctx context.Context, tool string, err error) error {
	if errors.Is(err, types.ErrInvalidArgument) {
		return newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}

	s.log.ErrorContext(ctx, "tool failed", "tool", tool, "error", err)
	return newMCPError(ErrorCodeInternalError, "inventory operation failed", map[string]interface{}{
		"error": err.Error(),
	})
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func itemNotFound(id int64) error {
	return newMCPError(ErrorCodeItemNotFound, "item not found", map[string]interface{}{
		"id": id,
	})
}

// arguments extracts the argument object of a tool call
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// requireString extracts a mandatory string parameter
func requireString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok {
		return "", missingParam(key, "missing or not a string")
	}
	return val, nil
}

// requireInt extracts a mandatory whole-number parameter. JSON numbers
// arrive as float64, so fractional values are rejected here.
func requireInt(args map[string]interface{}, key string) (int64, error) {
	switch val := args[key].(type) {
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || math.Abs(val) > 1<<53 {
			return 0, missingParam(key, "must be a whole number")
		}
		return int64(val), nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	default:
		return 0, missingParam(key, "missing or not a number")
	}
}

// requireNumber extracts a mandatory numeric parameter
func requireNumber(args map[string]interface{}, key string) (float64, error) {
	switch val := args[key].(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, missingParam(key, "missing or not a number")
	}
}

func missingParam(key, reason string) error {
	return newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("%s parameter is invalid", key), map[string]interface{}{
		"param":  key,
		"reason": reason,
	})
}
