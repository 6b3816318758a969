package common

import "time"

// Freshness TTLs per query resource, in two tiers:
//
// Live: quotes and anything that carries a price (lists, search). Short TTL.
//
// Reference: company profiles, ETF facts, holdings, analysis, history.
// These change at most daily on the backend.
const (
	FreshnessQuote     = 30 * time.Second
	FreshnessList      = 1 * time.Minute
	FreshnessSearch    = 2 * time.Minute
	FreshnessHistory   = 15 * time.Minute
	FreshnessAnalysis  = 30 * time.Minute
	FreshnessHoldings  = 6 * time.Hour
	FreshnessReference = 1 * time.Hour
)

var freshnessByResource = map[string]time.Duration{
	"quote":      FreshnessQuote,
	"etf-quote":  FreshnessQuote,
	"components": FreshnessList,
	"stocks":     FreshnessList,
	"etfs":       FreshnessList,
	"etf-top50":  FreshnessList,
	"search":     FreshnessSearch,
	"history":    FreshnessHistory,
	"analysis":   FreshnessAnalysis,
	"holdings":   FreshnessHoldings,
	"stock":      FreshnessReference,
	"etf":        FreshnessReference,
	"index":      FreshnessReference,
	"indices":    FreshnessReference,
}

// FreshnessFor returns the TTL for a query resource, or fallback when the
// resource has no dedicated tier.
func FreshnessFor(resource string, fallback time.Duration) time.Duration {
	if ttl, ok := freshnessByResource[resource]; ok {
		return ttl
	}
	return fallback
}

