package app

import (
	"context"
	"strings"

	"github.com/bobmcallan/invest-portal/internal/cache"
	"github.com/bobmcallan/invest-portal/internal/chart"
	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/handlers"
	"github.com/bobmcallan/invest-portal/internal/interfaces"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/mcp"
	"github.com/bobmcallan/invest-portal/internal/metrics"
	"github.com/bobmcallan/invest-portal/internal/query"
	"github.com/bobmcallan/invest-portal/internal/warmup"
)

// catalogAdapter converts MCP catalog tools to MCP page display tools.
func catalogAdapter(mcpHandler *mcp.Handler) func() []handlers.MCPPageTool {
	return func() []handlers.MCPPageTool {
		if mcpHandler == nil {
			return nil
		}
		catalog := mcpHandler.Catalog()
		tools := make([]handlers.MCPPageTool, len(catalog))
		for i, ct := range catalog {
			tools[i] = handlers.MCPPageTool{
				Name:        ct.Name,
				Description: ct.Description,
				Arguments:   ct.ArgumentSummary(),
			}
		}
		return tools
	}
}

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Metrics *metrics.Registry
	Store   interfaces.QueryStore
	API     *client.Client
	Queries *query.Client
	Market  *market.Service
	Pages   *handlers.Pages

	// HTTP handlers
	HomeHandler         *handlers.HomeHandler
	SearchHandler       *handlers.SearchHandler
	StockHandler        *handlers.StockHandler
	ETFHandler          *handlers.ETFHandler
	ETFListHandler      *handlers.ETFListHandler
	SP500Handler        *handlers.IndexHandler
	Nasdaq100Handler    *handlers.IndexHandler
	HistoryHandler      *handlers.HistoryHandler
	HealthHandler       *handlers.HealthHandler
	VersionHandler      *handlers.VersionHandler
	ServerHealthHandler *handlers.ServerHealthHandler
	MCPPageHandler      *handlers.MCPPageHandler
	MCPHandler          *mcp.Handler

	cancelWarmup context.CancelFunc
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	// Validate environment setting
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE: templates reload on every request")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	a.initData()
	a.initHandlers()

	if cfg.Warmup.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancelWarmup = cancel
		warmup.New(a.Market, logger).Start(ctx)
	}

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initData builds the backend client and the query cache in front of it.
func (a *App) initData() {
	a.Metrics = metrics.New()

	a.Store = cache.NewStore(a.Config, a.Logger)
	a.Queries = query.NewClient(a.Store, a.Logger, a.Config.CacheTTL())
	a.Queries.SetRecorder(a.Metrics)

	a.API = client.NewClient(a.Config.API.URL, a.Config.APITimeout(), a.Logger)
	a.API.SetRecorder(a.Metrics)

	a.Market = market.NewService(a.API, a.Queries)

	a.Logger.Debug().
		Str("api_url", a.API.BaseURL()).
		Str("cache", a.Store.Backend()).
		Msg("market data initialized")
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	embedder := chart.TradingView{}

	a.Pages = handlers.NewPages(a.Logger, a.Config.IsDevMode())
	a.HomeHandler = handlers.NewHomeHandler(a.Pages, a.Market)
	a.SearchHandler = handlers.NewSearchHandler(a.Pages, a.Market)
	a.StockHandler = handlers.NewStockHandler(a.Pages, a.Market, a.Logger, a.Config.Chart, embedder)
	a.ETFHandler = handlers.NewETFHandler(a.Pages, a.Market, a.Logger, a.Config.Chart, embedder)
	a.ETFListHandler = handlers.NewETFListHandler(a.Pages, a.Market)
	a.SP500Handler = handlers.NewIndexHandler(a.Pages, a.Market, a.Logger, handlers.SP500Page)
	a.Nasdaq100Handler = handlers.NewIndexHandler(a.Pages, a.Market, a.Logger, handlers.Nasdaq100Page)

	a.HistoryHandler = handlers.NewHistoryHandler(a.Market)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.ServerHealthHandler = handlers.NewServerHealthHandler(a.Logger, a.API)

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.Market, a.Logger)
	}
	a.MCPPageHandler = handlers.NewMCPPageHandler(a.Pages, a.MCPHandler != nil, catalogAdapter(a.MCPHandler))

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close stops background work and releases the cache store.
func (a *App) Close() error {
	if a.cancelWarmup != nil {
		a.cancelWarmup()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
