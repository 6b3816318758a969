// Package mcp exposes the portal's market data to agents over the Model
// Context Protocol. Tools read through the same query cache as the pages.
package mcp

import (
	"net/http"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/market"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	catalog    []CatalogTool
}

// NewServer builds the MCP server with every valid catalog tool registered.
// It is shared by the HTTP endpoint and the stdio binary.
func NewServer(svc *market.Service, logger *common.Logger) (*mcpserver.MCPServer, []CatalogTool) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	mcpSrv := mcpserver.NewMCPServer(
		"invest-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	validated := ValidateCatalog(Tools(), logger)
	toolCount := RegisterTools(mcpSrv, svc, validated)
	logger.Info().Int("tools", toolCount).Msg("MCP server initialized")

	return mcpSrv, validated
}

// NewHandler creates the streamable HTTP handler for /mcp.
func NewHandler(svc *market.Service, logger *common.Logger) *Handler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	mcpSrv, catalog := NewServer(svc, logger)
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	return &Handler{
		server:     mcpSrv,
		streamable: streamable,
		logger:     logger,
		catalog:    catalog,
	}
}

// Catalog returns a copy of the registered tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	result := make([]CatalogTool, len(h.catalog))
	copy(result, h.catalog)
	return result
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
