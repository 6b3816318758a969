// Command invest-mcp serves the portal's MCP tools over stdio for desktop
// agents that launch a local process instead of calling /mcp.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/invest-portal/internal/cache"
	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/mcp"
	"github.com/bobmcallan/invest-portal/internal/query"
)

func main() {
	configFile := flag.String("config", "", "Path to config file")
	apiURL := flag.String("api-url", "", "Market data API base URL (overrides config)")
	showVersion := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("invest-mcp version %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	cfg, err := config.LoadFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, 0, "", *apiURL)

	// stdout is the JSON-RPC channel; the console writer logs to stderr.
	logger := common.NewLoggerFromConfig(cfg.Logging)

	store := cache.NewStore(cfg, logger)
	defer store.Close()

	api := client.NewClient(cfg.API.URL, cfg.APITimeout(), logger)
	svc := market.NewService(api, query.NewClient(store, logger, cfg.CacheTTL()))

	mcpServer, _ := mcp.NewServer(svc, logger)

	if err := server.ServeStdio(mcpServer); err != nil {
		fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
		os.Exit(1)
	}
}
