package query

import (
	"context"
	"sync"
)

// Observer tracks the query for a single, changing key. Observing a new key
// supersedes the previous one: its context is cancelled and any result it
// still produces is dropped.
type Observer[T any] struct {
	client *Client

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State[T]
	done   chan struct{}
}

// NewObserver creates an observer with no current key.
func NewObserver[T any](c *Client) *Observer[T] {
	done := make(chan struct{})
	close(done)
	return &Observer[T]{client: c, done: done}
}

// Observe starts fetching key and makes it the current key.
func (o *Observer[T]) Observe(ctx context.Context, key Key, fn func(context.Context) (T, error)) {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.gen++
	gen := o.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.state = State[T]{Status: StatusPending, Key: key}
	done := make(chan struct{})
	o.done = done
	o.mu.Unlock()

	go func() {
		defer close(done)
		st := Fetch(fetchCtx, o.client, key, fn)

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.gen == gen {
			o.state = st
		}
	}()
}

// State returns the state of the current key.
func (o *Observer[T]) State() State[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Wait blocks until the current key settles or ctx ends. If the key is
// superseded while waiting, Wait follows the new one.
func (o *Observer[T]) Wait(ctx context.Context) State[T] {
	for {
		o.mu.Lock()
		gen, done := o.gen, o.done
		o.mu.Unlock()

		select {
		case <-ctx.Done():
			st := o.State()
			if st.Status == StatusPending {
				st.Status = StatusError
				st.Err = ctx.Err()
			}
			return st
		case <-done:
		}

		o.mu.Lock()
		if o.gen == gen {
			st := o.state
			o.mu.Unlock()
			return st
		}
		o.mu.Unlock()
	}
}

// Close cancels the current fetch.
func (o *Observer[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}
