package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/listing"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
	"github.com/bobmcallan/invest-portal/internal/query"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const maxHoldingsLimit = 100

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult renders v as the single text content of a result.
func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("Error: failed to encode result")
	}
	return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(string(out))}}
}

// backendError maps a failed read to a result the agent can act on.
func backendError(what, symbol string, err error) *mcp.CallToolResult {
	if errors.Is(err, client.ErrNotFound) {
		return errorResult(fmt.Sprintf("Error: %s %s not found", what, symbol))
	}
	return errorResult(fmt.Sprintf("Error: %s unavailable: %v", what, err))
}

// requireSymbol reads and validates the symbol argument.
func requireSymbol(r mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	symbol := models.NormalizeSymbol(r.GetString("symbol", ""))
	if symbol == "" {
		return "", errorResult("Error: symbol parameter is required")
	}
	if len(symbol) > 16 || strings.ContainsAny(symbol, "/\\ ?#") {
		return "", errorResult("Error: invalid symbol " + symbol)
	}
	return symbol, nil
}

func searchHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := client.NormalizeSearchQuery(r.GetString("query", ""))
		if q == "" {
			return errorResult("Error: query parameter is required"), nil
		}
		kind := models.ParseSearchType(r.GetString("type", ""))

		st := svc.Search(ctx, q, kind)
		if st.IsError() {
			return backendError("search", q, st.Err), nil
		}
		return jsonResult(map[string]any{
			"query":  q,
			"type":   kind,
			"total":  st.Data.Total(),
			"stocks": st.Data.Stocks,
			"etfs":   st.Data.ETFs,
		}), nil
	}
}

func stockHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, bad := requireSymbol(r)
		if bad != nil {
			return bad, nil
		}

		var (
			stock query.State[*models.Stock]
			quote query.State[*models.Quote]
		)
		query.All(
			func() { stock = svc.Stock(ctx, symbol) },
			func() { quote = svc.StockQuote(ctx, symbol) },
		)
		if stock.IsError() {
			return backendError("stock", symbol, stock.Err), nil
		}

		out := map[string]any{"stock": stock.Data, "quote": nil}
		if quote.HasData() {
			out["quote"] = quote.Data
		}
		return jsonResult(out), nil
	}
}

func historyHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, bad := requireSymbol(r)
		if bad != nil {
			return bad, nil
		}
		period := r.GetString("period", models.DefaultPeriod)
		if !models.ValidPeriod(period) {
			return errorResult(fmt.Sprintf("Error: invalid period %q, expected one of %s", period, strings.Join(models.Periods, ", "))), nil
		}

		st := svc.History(ctx, symbol, period)
		if st.IsError() {
			return backendError("history for", symbol, st.Err), nil
		}
		return jsonResult(map[string]any{"symbol": symbol, "period": period, "data": st.Data}), nil
	}
}

func etfHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, bad := requireSymbol(r)
		if bad != nil {
			return bad, nil
		}
		limit := r.GetInt("holdings_limit", client.DefaultHoldingsLimit)
		if limit < 1 || limit > maxHoldingsLimit {
			return errorResult(fmt.Sprintf("Error: holdings_limit must be between 1 and %d", maxHoldingsLimit)), nil
		}

		var (
			etf      query.State[*models.ETF]
			quote    query.State[*models.Quote]
			holdings query.State[[]models.ETFHolding]
		)
		query.All(
			func() { etf = svc.ETF(ctx, symbol) },
			func() { quote = svc.ETFQuote(ctx, symbol) },
			func() { holdings = svc.Holdings(ctx, symbol, limit) },
		)
		if etf.IsError() {
			return backendError("ETF", symbol, etf.Err), nil
		}

		out := map[string]any{"etf": etf.Data, "quote": nil, "holdings": []models.ETFHolding{}}
		if quote.HasData() {
			out["quote"] = quote.Data
		}
		if holdings.HasData() {
			out["holdings"] = holdings.Data
		}
		return jsonResult(out), nil
	}
}

func componentsHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := models.NormalizeSymbol(r.GetString("index", ""))
		switch index {
		case models.IndexSP500, models.IndexNasdaq100:
		default:
			return errorResult(fmt.Sprintf("Error: index must be %s or %s", models.IndexSP500, models.IndexNasdaq100)), nil
		}

		state := listing.Default().
			WithSort(r.GetString("sort", listing.DefaultSort)).
			WithSector(r.GetString("sector", "")).
			WithPage(r.GetInt("page", 1))
		q := state.Query(client.DefaultComponentsPerPage)

		st := svc.Components(ctx, index, q)
		if st.IsError() {
			return backendError("components of", index, st.Err), nil
		}
		return jsonResult(map[string]any{
			"index": index,
			"sort":  state.Sort,
			"items": st.Data.Items,
			"meta":  st.Data.Meta,
		}), nil
	}
}

func analysisHandler(svc *market.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, bad := requireSymbol(r)
		if bad != nil {
			return bad, nil
		}

		var st query.State[*models.Analysis]
		switch kind := r.GetString("type", models.SymbolTypeStock); kind {
		case models.SymbolTypeStock:
			st = svc.StockAnalysis(ctx, symbol)
		case models.SymbolTypeETF:
			st = svc.ETFAnalysis(ctx, symbol)
		default:
			return errorResult("Error: type must be stock or etf"), nil
		}
		if st.IsError() {
			return backendError("analysis for", symbol, st.Err), nil
		}
		if st.Data.Empty() {
			return jsonResult(map[string]any{"symbol": symbol, "analysis": nil}), nil
		}
		return jsonResult(map[string]any{"symbol": symbol, "analysis": st.Data}), nil
	}
}
