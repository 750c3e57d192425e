package main

import "sync"

// poolDispatcher owns a fixed set of worker goroutines that execute tile
// tasks released in generations. The driving goroutine publishes the task
// and tile assignment, bumps the generation counter, and waits for the
// pending count to reach zero, which gives the phase barrier without any
// per-cell locking.
type poolDispatcher struct {
	mu       sync.Mutex
	cond     *sync.Cond
	workers  int
	gen      int
	pending  int
	task     func(tile)
	assigned [][]tile
	closed   bool
}

// newPoolDispatcher launches the worker goroutines; they idle on the
// condition variable until the first phase is published.
func newPoolDispatcher(workers int) *poolDispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &poolDispatcher{workers: workers}
	d.cond = sync.NewCond(&d.mu)
	for i := 0; i < workers; i++ {
		go d.workerLoop(i)
	}
	return d
}

// workerLoop waits for a new generation, runs the tiles assigned to this
// worker, and signals completion through the shared pending counter.
func (d *poolDispatcher) workerLoop(index int) {
	lastGen := 0
	d.mu.Lock()
	for {
		for d.gen == lastGen && !d.closed {
			d.cond.Wait()
		}
		if d.closed {
			d.mu.Unlock()
			return
		}
		lastGen = d.gen
		task := d.task
		var mine []tile
		if index < len(d.assigned) {
			mine = d.assigned[index]
		}
		d.mu.Unlock()

		for _, t := range mine {
			if t.length > 0 {
				task(t)
			}
		}

		d.mu.Lock()
		d.pending--
		if d.pending == 0 {
			d.cond.Broadcast()
		}
	}
}

// run publishes one phase and blocks until every worker has finished it.
func (d *poolDispatcher) run(tiles []tile, fn func(tile)) {
	d.mu.Lock()
	d.assigned = assignTiles(d.workers, tiles)
	d.task = fn
	d.pending = d.workers
	d.gen++
	d.cond.Broadcast()
	for d.pending > 0 {
		d.cond.Wait()
	}
	d.mu.Unlock()
}

// close stops the worker goroutines. The dispatcher must not be used after.
func (d *poolDispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
}
