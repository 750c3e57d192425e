package main

import "golang.org/x/sync/errgroup"

// parallelDispatcher runs each tile on its own goroutine and joins the
// group before returning. Goroutines are cheap enough at tile granularity
// that no worker state needs to persist across phases.
type parallelDispatcher struct{}

func (parallelDispatcher) run(tiles []tile, fn func(tile)) {
	var g errgroup.Group
	for _, t := range tiles {
		if t.length == 0 {
			continue
		}
		g.Go(func() error {
			fn(t)
			return nil
		})
	}
	_ = g.Wait()
}

func (parallelDispatcher) close() {}
