package mcp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolNamePattern restricts tool names to what MCP clients accept.
var toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// CatalogTool describes one registered tool.
type CatalogTool struct {
	Name        string
	Description string
	Params      []CatalogParam

	handler func(*market.Service) server.ToolHandlerFunc
}

// CatalogParam describes one tool argument.
type CatalogParam struct {
	Name        string
	Type        string // string or number
	Description string
	Required    bool
	Enum        []string
}

// ArgumentSummary renders the parameter names, required ones marked with *.
func (ct CatalogTool) ArgumentSummary() string {
	if len(ct.Params) == 0 {
		return "none"
	}
	names := make([]string, len(ct.Params))
	for i, p := range ct.Params {
		names[i] = p.Name
		if p.Required {
			names[i] += "*"
		}
	}
	return strings.Join(names, ", ")
}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if !toolNamePattern.MatchString(ct.Name) {
		return fmt.Errorf("tool %q has an invalid name", ct.Name)
	}
	if ct.handler == nil {
		return fmt.Errorf("tool %q has no handler", ct.Name)
	}
	seen := make(map[string]bool, len(ct.Params))
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ct.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q repeats parameter %q", ct.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ValidateCatalog filters catalog entries, logging warnings for invalid or
// duplicate tools.
func ValidateCatalog(catalog []CatalogTool, logger *common.Logger) []CatalogTool {
	seen := make(map[string]bool, len(catalog))
	valid := make([]CatalogTool, 0, len(catalog))
	for _, ct := range catalog {
		if err := ValidateCatalogTool(ct); err != nil {
			logger.Warn().Err(err).Msg("skipping invalid catalog tool")
			continue
		}
		if seen[ct.Name] {
			logger.Warn().Str("name", ct.Name).Msg("skipping duplicate catalog tool")
			continue
		}
		seen[ct.Name] = true
		valid = append(valid, ct)
	}
	return valid
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with its input schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}
	if len(p.Enum) > 0 {
		opts = append(opts, mcp.Enum(p.Enum...))
	}

	if p.Type == "number" {
		return mcp.WithNumber(p.Name, opts...)
	}
	return mcp.WithString(p.Name, opts...)
}
