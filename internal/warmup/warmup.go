// Package warmup prefetches the most visited lists into the query cache at
// start-up so the first visitors do not pay for cold backend calls.
package warmup

import (
	"context"
	"time"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/listing"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	retryAttempts = 3
	retryDelay    = 2 * time.Second
)

// Target is one prefetched list.
type Target struct {
	Name  string
	fetch func(ctx context.Context, svc *market.Service) error
}

// Targets are the lists prefetched on start-up: the first page of each index
// in default order, and the top-50 ETFs. The component queries are built the
// same way the index pages build them so the cache keys line up.
func Targets() []Target {
	components := func(symbol string) Target {
		return Target{
			Name: "components:" + symbol,
			fetch: func(ctx context.Context, svc *market.Service) error {
				q := listing.Default().Query(client.DefaultComponentsPerPage)
				return svc.Components(ctx, symbol, q).Err
			},
		}
	}
	return []Target{
		components(models.IndexSP500),
		components(models.IndexNasdaq100),
		{
			Name: "etf-top50",
			fetch: func(ctx context.Context, svc *market.Service) error {
				return svc.TopETFs(ctx).Err
			},
		},
	}
}

// Warmer runs the targets against a market service.
type Warmer struct {
	svc      *market.Service
	logger   *common.Logger
	targets  []Target
	attempts int
	delay    time.Duration
}

// New creates a warmer for the default targets.
func New(svc *market.Service, logger *common.Logger) *Warmer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Warmer{
		svc:      svc,
		logger:   logger,
		targets:  Targets(),
		attempts: retryAttempts,
		delay:    retryDelay,
	}
}

// Start runs the warmup in the background.
func (w *Warmer) Start(ctx context.Context) {
	go w.Run(ctx)
}

// Run fetches every target concurrently and returns the names that still
// failed after retries. Failures are logged and never fatal.
func (w *Warmer) Run(ctx context.Context) []string {
	start := time.Now()
	failed := make([]string, len(w.targets))

	var g errgroup.Group
	for i, t := range w.targets {
		g.Go(func() error {
			if err := w.runTarget(ctx, t); err != nil {
				failed[i] = t.Name
			}
			return nil
		})
	}
	_ = g.Wait()

	var names []string
	for _, n := range failed {
		if n != "" {
			names = append(names, n)
		}
	}

	w.logger.Info().
		Int("targets", len(w.targets)).
		Int("failed", len(names)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("warmup: completed")
	return names
}

func (w *Warmer) runTarget(ctx context.Context, t Target) error {
	var err error
	for attempt := 1; attempt <= w.attempts; attempt++ {
		if err = t.fetch(ctx, w.svc); err == nil {
			return nil
		}
		w.logger.Warn().
			Str("target", t.Name).
			Int("attempt", attempt).
			Int("max_attempts", w.attempts).
			Str("error", err.Error()).
			Msg("warmup: fetch failed")

		if attempt < w.attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.delay):
			}
		}
	}
	return err
}
