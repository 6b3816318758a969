package query

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/interfaces"
)

// Cache events reported to a Recorder.
const (
	EventHit    = "hit"
	EventMiss   = "miss"
	EventShared = "shared"
	EventError  = "error"
)

// Recorder receives one event per Fetch.
type Recorder interface {
	QueryEvent(resource, event string)
}

type nopRecorder struct{}

func (nopRecorder) QueryEvent(string, string) {}

// Client owns the store and the in-flight deduplication for all queries.
type Client struct {
	store    interfaces.QueryStore
	group    singleflight.Group
	logger   *common.Logger
	fallback time.Duration
	recorder Recorder
	now      func() time.Time
}

// NewClient creates a query client. fallback is the freshness used for
// resources without a dedicated tier.
func NewClient(store interfaces.QueryStore, logger *common.Logger, fallback time.Duration) *Client {
	return &Client{
		store:    store,
		logger:   logger,
		fallback: fallback,
		recorder: nopRecorder{},
		now:      time.Now,
	}
}

// SetRecorder installs the metrics hook.
func (c *Client) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	c.recorder = r
}

// Store returns the backing store.
func (c *Client) Store() interfaces.QueryStore { return c.store }

// Invalidate drops every cached entry whose key starts with prefix.
func (c *Client) Invalidate(ctx context.Context, prefix string) {
	c.store.InvalidatePrefix(ctx, prefix)
}

// TTL returns the freshness window for a resource.
func (c *Client) TTL(resource string) time.Duration {
	return common.FreshnessFor(resource, c.fallback)
}

type flightResult struct {
	body      []byte
	fetchedAt time.Time
}

// cached is the stored form of a successful result.
type cached struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Fetch returns the state of key. A fresh cached value is returned without
// calling fn. Otherwise fn runs once for all concurrent callers of the same
// key and a success is stored for the resource's TTL. Errors are not stored.
//
// fn runs detached from ctx cancellation. A caller whose ctx ends only
// stops waiting; the flight still completes for the others.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) State[T] {
	id := key.String()
	resource := key.Resource()

	if b, ok := c.store.Get(ctx, id); ok {
		var entry cached
		var data T
		if err := json.Unmarshal(b, &entry); err == nil {
			if err := json.Unmarshal(entry.Data, &data); err == nil {
				c.recorder.QueryEvent(resource, EventHit)
				return State[T]{Status: StatusSuccess, Data: data, Key: key, FetchedAt: entry.FetchedAt}
			}
		}
		c.logger.Debug().Str("key", id).Msg("query: discarding undecodable cache entry")
	}

	ch := c.group.DoChan(id, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		v, err := fn(fetchCtx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		now := c.now()
		body, err := json.Marshal(cached{FetchedAt: now, Data: data})
		if err != nil {
			return nil, err
		}
		c.store.Set(fetchCtx, id, body, c.TTL(resource))
		return flightResult{body: data, fetchedAt: now}, nil
	})

	select {
	case <-ctx.Done():
		return State[T]{Status: StatusError, Err: ctx.Err(), Key: key}
	case res := <-ch:
		if res.Err != nil {
			c.recorder.QueryEvent(resource, EventError)
			c.logger.Debug().Str("key", id).Err(res.Err).Msg("query: fetch failed")
			return State[T]{Status: StatusError, Err: res.Err, Key: key}
		}
		if res.Shared {
			c.recorder.QueryEvent(resource, EventShared)
		} else {
			c.recorder.QueryEvent(resource, EventMiss)
		}

		fr := res.Val.(flightResult)
		// Each caller decodes its own copy so no two callers share slices.
		var data T
		if err := json.Unmarshal(fr.body, &data); err != nil {
			return State[T]{Status: StatusError, Err: err, Key: key}
		}
		return State[T]{Status: StatusSuccess, Data: data, Key: key, FetchedAt: fr.fetchedAt}
	}
}
