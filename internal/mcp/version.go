package mcp

import (
	"context"
	"time"

	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const backendProbeTimeout = 3 * time.Second

// versionInfo holds version fields for the portal.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
}

// backendStatus is the backend half of get_version.
type backendStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	URL       string `json:"url,omitempty"`
}

type versionResult struct {
	Portal  versionInfo   `json:"invest_portal"`
	Backend backendStatus `json:"backend"`
}

// versionHandler reports the portal version and probes the backend. An
// unreachable backend is reported as down, not as a tool error.
func versionHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := versionResult{
			Portal: versionInfo{
				Version: config.GetVersion(),
				Build:   config.GetBuild(),
				Commit:  config.GetGitCommit(),
			},
			Backend: backendStatus{Status: "down"},
		}

		probeCtx, cancel := context.WithTimeout(ctx, backendProbeTimeout)
		defer cancel()
		if h, err := svc.API().Health(probeCtx); err == nil {
			result.Backend = backendStatus{Status: "ok", Service: h.Service, Timestamp: h.Timestamp}
		}
		if b, ok := svc.API().(interface{ BaseURL() string }); ok {
			result.Backend.URL = b.BaseURL()
		}

		return jsonResult(result), nil
	}
}
