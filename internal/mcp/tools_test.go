package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/stockroom/pkg/types"
)

type handlerFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(handler handlerFunc, args map[string]interface{}) (*mcp.CallToolResult, error) {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return handler(context.Background(), request)
}

// decode calls the handler and unmarshals its JSON text result.
func decode(t *testing.T, handler handlerFunc, args map[string]interface{}, into interface{}) {
	t.Helper()
	result, err := call(handler, args)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	require.NoError(t, json.Unmarshal([]byte(text.Text), into))
}

func assertMCPCode(t *testing.T, err error, code int) {
	t.Helper()
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, code, mcpErr.Code, mcpErr.Message)
}

type itemResponse struct {
	Created bool       `json:"created"`
	Updated bool       `json:"updated"`
	Item    types.Item `json:"item"`
}

type listResponse struct {
	Query string       `json:"query"`
	Count int          `json:"count"`
	Items []types.Item `json:"items"`
}

func TestAddItem(t *testing.T) {
	srv, inv := setupServer(t)

	var resp itemResponse
	decode(t, srv.handleAddItem, map[string]interface{}{
		"name": " Pen ", "quantity": float64(3), "price": 1.5,
	}, &resp)

	assert.True(t, resp.Created)
	assert.Equal(t, "Pen", resp.Item.Name)
	assert.Equal(t, int64(3), resp.Item.Quantity)

	got, ok := inv.GetByID(resp.Item.ID)
	require.True(t, ok)
	assert.Equal(t, resp.Item, got)
}

func TestAddItem_InvalidParams(t *testing.T) {
	srv, inv := setupServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"quantity": float64(1), "price": float64(1)}},
		{"blank name", map[string]interface{}{"name": "  ", "quantity": float64(1), "price": float64(1)}},
		{"negative quantity", map[string]interface{}{"name": "Pen", "quantity": float64(-1), "price": float64(1)}},
		{"fractional quantity", map[string]interface{}{"name": "Pen", "quantity": 1.5, "price": float64(1)}},
		{"negative price", map[string]interface{}{"name": "Pen", "quantity": float64(1), "price": -0.01}},
		{"price as string", map[string]interface{}{"name": "Pen", "quantity": float64(1), "price": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(srv.handleAddItem, tt.args)
			assertMCPCode(t, err, ErrorCodeInvalidParams)
		})
	}
	assert.Empty(t, inv.ListAll())
}

func TestInvalidArgumentsShape(t *testing.T) {
	srv, _ := setupServer(t)

	var request mcp.CallToolRequest
	request.Params.Arguments = []interface{}{"not", "an", "object"}
	_, err := srv.handleGetItem(context.Background(), request)
	assertMCPCode(t, err, ErrorCodeInvalidParams)
}

func TestDeleteItem(t *testing.T) {
	srv, inv := setupServer(t)
	item, err := inv.Create(context.Background(), "Pen", 1, 1)
	require.NoError(t, err)

	var resp map[string]interface{}
	decode(t, srv.handleDeleteItem, map[string]interface{}{"id": float64(item.ID)}, &resp)
	assert.Equal(t, true, resp["deleted"])

	_, err = call(srv.handleDeleteItem, map[string]interface{}{"id": float64(item.ID)})
	assertMCPCode(t, err, ErrorCodeItemNotFound)
}

func TestUpdates(t *testing.T) {
	srv, inv := setupServer(t)
	item, err := inv.Create(context.Background(), "Pen", 1, 1)
	require.NoError(t, err)
	id := float64(item.ID)

	var resp itemResponse
	decode(t, srv.handleSetQuantity, map[string]interface{}{"id": id, "quantity": float64(9)}, &resp)
	assert.True(t, resp.Updated)
	assert.Equal(t, int64(9), resp.Item.Quantity)

	decode(t, srv.handleSetPrice, map[string]interface{}{"id": id, "price": 2.5}, &resp)
	assert.Equal(t, 2.5, resp.Item.Price)

	decode(t, srv.handleRenameItem, map[string]interface{}{"id": id, "name": "Marker"}, &resp)
	assert.Equal(t, "Marker", resp.Item.Name)

	got, ok := inv.GetByID(item.ID)
	require.True(t, ok)
	assert.Equal(t, resp.Item, got)
}

func TestUpdates_Errors(t *testing.T) {
	srv, inv := setupServer(t)
	item, err := inv.Create(context.Background(), "Pen", 1, 1)
	require.NoError(t, err)

	_, err = call(srv.handleSetQuantity, map[string]interface{}{"id": float64(99), "quantity": float64(1)})
	assertMCPCode(t, err, ErrorCodeItemNotFound)

	_, err = call(srv.handleSetQuantity, map[string]interface{}{"id": float64(item.ID), "quantity": float64(-5)})
	assertMCPCode(t, err, ErrorCodeInvalidParams)

	_, err = call(srv.handleSetPrice, map[string]interface{}{"id": float64(item.ID), "price": float64(-1)})
	assertMCPCode(t, err, ErrorCodeInvalidParams)

	_, err = call(srv.handleRenameItem, map[string]interface{}{"id": float64(item.ID), "name": ""})
	assertMCPCode(t, err, ErrorCodeInvalidParams)

	got, _ := inv.GetByID(item.ID)
	assert.Equal(t, item, got, "rejected updates must not change the item")
}

func TestGetItem(t *testing.T) {
	srv, inv := setupServer(t)
	item, err := inv.Create(context.Background(), "Pen", 1, 1)
	require.NoError(t, err)

	var resp itemResponse
	decode(t, srv.handleGetItem, map[string]interface{}{"id": float64(item.ID)}, &resp)
	assert.Equal(t, item, resp.Item)

	_, err = call(srv.handleGetItem, map[string]interface{}{"id": float64(item.ID + 1)})
	assertMCPCode(t, err, ErrorCodeItemNotFound)

	_, err = call(srv.handleGetItem, map[string]interface{}{})
	assertMCPCode(t, err, ErrorCodeInvalidParams)
}

func TestFindItems(t *testing.T) {
	srv, inv := setupServer(t)
	ctx := context.Background()
	pen, err := inv.Create(ctx, "Pen", 1, 1)
	require.NoError(t, err)
	pencil, err := inv.Create(ctx, "Pencil", 1, 1)
	require.NoError(t, err)

	var resp listResponse
	decode(t, srv.handleFindItems, map[string]interface{}{"query": "PEN"}, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []types.Item{pen}, resp.Items, "exact match must win")

	decode(t, srv.handleFindItems, map[string]interface{}{"query": "nci"}, &resp)
	assert.Equal(t, []types.Item{pencil}, resp.Items)

	decode(t, srv.handleFindItems, map[string]interface{}{"query": "stapler"}, &resp)
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Items)

	_, err = call(srv.handleFindItems, map[string]interface{}{})
	assertMCPCode(t, err, ErrorCodeInvalidParams)
}

func TestListItemsAndStats(t *testing.T) {
	srv, inv := setupServer(t)
	ctx := context.Background()
	_, err := inv.Create(ctx, "Pen", 2, 1.5)
	require.NoError(t, err)
	_, err = inv.Create(ctx, "Pad", 1, 4)
	require.NoError(t, err)

	var list listResponse
	decode(t, srv.handleListItems, nil, &list)
	require.Equal(t, 2, list.Count)
	assert.Less(t, list.Items[0].ID, list.Items[1].ID)

	var stats map[string]interface{}
	decode(t, srv.handleInventoryStats, nil, &stats)
	assert.Equal(t, float64(2), stats["items"])
	assert.Equal(t, float64(3), stats["units"])
	assert.Equal(t, "7.00", stats["stock_value"])
}

// brokenInventory fails every create with a store error.
type brokenInventory struct {
	Inventory
}

var errDisk = errors.New("disk I/O error")

func (brokenInventory) Create(context.Context, string, int64, float64) (types.Item, error) {
	return types.Item{}, errDisk
}

func TestAddItem_StoreFailure(t *testing.T) {
	_, inv := setupServer(t)
	srv, err := NewServer(brokenInventory{Inventory: inv}, nil)
	require.NoError(t, err)

	_, err = call(srv.handleAddItem, map[string]interface{}{
		"name": "Pen", "quantity": float64(1), "price": float64(1),
	})
	assertMCPCode(t, err, ErrorCodeInternalError)
	assert.Empty(t, inv.ListAll())
}

// vanishingInventory reports a successful update for an item that is gone
// by the time it is read back.
type vanishingInventory struct {
	Inventory
}

func (vanishingInventory) SetQuantity(context.Context, int64, int64) (bool, error) {
	return true, nil
}

func (vanishingInventory) GetByID(int64) (types.Item, bool) {
	return types.Item{}, false
}

func TestSetQuantity_ItemDeletedBeforeReadBack(t *testing.T) {
	_, inv := setupServer(t)
	srv, err := NewServer(vanishingInventory{Inventory: inv}, nil)
	require.NoError(t, err)

	result, err := call(srv.handleSetQuantity, map[string]interface{}{"id": float64(1), "quantity": float64(2)})
	assert.Nil(t, result)
	assertMCPCode(t, err, ErrorCodeItemNotFound)
}
