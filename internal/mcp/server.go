package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/stockroom/internal/inventory"
	"github.com/dshills/stockroom/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "stockroom"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Inventory is the façade surface exposed as tools
type Inventory interface {
	Create(ctx context.Context, name string, quantity int64, price float64) (types.Item, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SetQuantity(ctx context.Context, id int64, quantity int64) (bool, error)
	SetPrice(ctx context.Context, id int64, price float64) (bool, error)
	Rename(ctx context.Context, id int64, name string) (bool, error)
	GetByID(id int64) (types.Item, bool)
	FindByName(query string) []types.Item
	ListAll() []types.Item
	Stats() inventory.Stats
}

// Server wraps the MCP server with application dependencies.
// It does not own the inventory; the caller closes it.
type Server struct {
	mcp *server.MCPServer
	inv Inventory
	log *slog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(inv Inventory, log *slog.Logger) (*Server, error) {
	if inv == nil {
		return nil, fmt.Errorf("inventory is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcp: mcpServer,
		inv: inv,
		log: log,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve speaks MCP over the given streams and blocks until ctx is done or
// the input closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError))

	s.log.InfoContext(ctx, "mcp server listening on stdio", "name", ServerName, "version", ServerVersion)
	return stdio.Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(addItemTool(), s.handleAddItem)
	s.mcp.AddTool(deleteItemTool(), s.handleDeleteItem)
	s.mcp.AddTool(setQuantityTool(), s.handleSetQuantity)
	s.mcp.AddTool(setPriceTool(), s.handleSetPrice)
	s.mcp.AddTool(renameItemTool(), s.handleRenameItem)
	s.mcp.AddTool(getItemTool(), s.handleGetItem)
	s.mcp.AddTool(findItemsTool(), s.handleFindItems)
	s.mcp.AddTool(listItemsTool(), s.handleListItems)
	s.mcp.AddTool(inventoryStatsTool(), s.handleInventoryStats)

	return nil
}
