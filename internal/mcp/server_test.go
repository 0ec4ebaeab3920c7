package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/stockroom/internal/inventory"
	"github.com/dshills/stockroom/internal/storage"
)

func setupServer(t *testing.T) (*Server, *inventory.Inventory) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(context.Background(), ":memory:")
	require.NoError(t, err)

	inv, err := inventory.New(context.Background(), store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = inv.Close() })

	srv, err := NewServer(inv, nil)
	require.NoError(t, err)
	return srv, inv
}

func TestNewServer(t *testing.T) {
	t.Run("requires an inventory", func(t *testing.T) {
		_, err := NewServer(nil, nil)
		assert.Error(t, err)
	})

	t.Run("server has all required components", func(t *testing.T) {
		srv, _ := setupServer(t)
		assert.NotNil(t, srv.mcp, "MCP server should be initialized")
		assert.NotNil(t, srv.inv, "Inventory should be set")
		assert.NotNil(t, srv.log, "Logger should default to discard")
	})
}

func TestServe_ListTools(t *testing.T) {
	srv, _ := setupServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n") + "\n"

	pr, pw := io.Pipe()
	var out syncBuffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, pr, &out) }()

	_, err := pw.Write([]byte(input))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"id":2`)
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	_ = pw.Close()
	<-done

	var names []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp struct {
			ID     int `json:"id"`
			Result struct {
				Tools []struct {
					Name string `json:"name"`
				} `json:"tools"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		if resp.ID != 2 {
			continue
		}
		for _, tool := range resp.Result.Tools {
			names = append(names, tool.Name)
		}
	}

	assert.ElementsMatch(t, []string{
		"add_item", "delete_item", "set_quantity", "set_price", "rename_item",
		"get_item", "find_items", "list_items", "inventory_stats",
	}, names)
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
