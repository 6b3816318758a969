package query

import "golang.org/x/sync/errgroup"

// All runs sibling fetches concurrently and waits for every one of them.
// Each fetch records its own State, so one failing never cancels another.
func All(fns ...func()) {
	var g errgroup.Group
	for _, fn := range fns {
		g.Go(func() error {
			fn()
			return nil
		})
	}
	_ = g.Wait()
}
