package handlers

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/invest-portal/internal/config"
)

// MCPPageTool holds display-only fields for a tool on the MCP page.
type MCPPageTool struct {
	Name        string
	Description string
	Arguments   string
}

type mcpPageData struct {
	Enabled       bool
	Endpoint      string
	Tools         []MCPPageTool
	ToolCount     string
	PortalVersion string
}

// MCPPageHandler serves the page describing how to connect an agent to /mcp.
type MCPPageHandler struct {
	pages     *Pages
	enabled   bool
	catalogFn func() []MCPPageTool
}

// NewMCPPageHandler creates a new MCP info page handler. catalogFn lists the
// registered tools; it may be nil when the endpoint is disabled.
func NewMCPPageHandler(pages *Pages, enabled bool, catalogFn func() []MCPPageTool) *MCPPageHandler {
	return &MCPPageHandler{pages: pages, enabled: enabled, catalogFn: catalogFn}
}

// ServeHTTP handles GET /mcp-info.
func (h *MCPPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	data := mcpPageData{
		Enabled:       h.enabled,
		Endpoint:      requestOrigin(r) + "/mcp",
		ToolCount:     "NO TOOLS",
		PortalVersion: config.GetVersion(),
	}
	if h.enabled && h.catalogFn != nil {
		data.Tools = h.catalogFn()
		if len(data.Tools) > 0 {
			data.ToolCount = strconv.Itoa(len(data.Tools))
		}
	}

	h.pages.Render(w, r, http.StatusOK, "mcp.html", Page{Active: "mcp", Data: data})
}

// requestOrigin reconstructs the scheme and host the client used.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
