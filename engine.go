package main

import "fmt"

// engineState tracks the lifecycle of a run.
type engineState int

const (
	engineUninitialized engineState = iota
	engineInitialized
	engineStepping
	engineFinalized
)

// engine owns the double-buffered field for the duration of a run and
// drives the fixed phase sequence of every step: boundary fill, stencil
// update, commit, advance time. Tiles within a phase run concurrently under
// whichever dispatcher is supplied; phases are strictly ordered because
// each dispatcher call is a full barrier.
type engine struct {
	params simParams
	clock  simClock
	state  engineState

	// cur carries the ghost margin; next is bare. Both are allocated once
	// in initialize and never reallocated mid-run.
	cur  *scalarField
	next *scalarField

	// interiorTiles partitions the flattened interior [0, ncells²);
	// edgeTiles partitions the boundary index range [0, ncells).
	interiorTiles []tile
	edgeTiles     []tile

	dx, dy float64
}

func newEngine(p simParams) *engine {
	return &engine{params: p, dx: p.dx(), dy: p.dx()}
}

// initialize allocates both buffers, derives the tile partitions, and seeds
// the radial pulse into cur's interior. The wall clock starts here so the
// reported duration covers initialization as well as the step loop.
func (e *engine) initialize(d dispatcher) error {
	if e.state != engineUninitialized {
		return fmt.Errorf("engine: initialize called in state %d", e.state)
	}
	n := e.params.NCells
	var err error
	if e.interiorTiles, err = partition(n*n, e.params.NTiles); err != nil {
		return err
	}
	if e.edgeTiles, err = partition(n, e.params.NTiles); err != nil {
		return err
	}

	e.clock.startRun()
	e.cur = newScalarField(n + nGhosts)
	e.next = newScalarField(n)

	d.run(e.interiorTiles, func(t tile) {
		initTile(e.cur.data, n, e.dx, e.dy, t)
	})
	e.state = engineInitialized
	return nil
}

// step advances the simulation by one time step. The three phases must not
// overlap: the update reads the ghost cells the fill wrote, and the commit
// writes the cells the update read.
func (e *engine) step(d dispatcher) {
	n := e.params.NCells
	side := e.cur.side

	d.run(e.edgeTiles, func(t tile) {
		fillBoundaryRange(e.cur.data, side, ghostWidth+t.start, ghostWidth+t.start+t.length)
	})
	d.run(e.interiorTiles, func(t tile) {
		updateTile(e.cur.data, e.next.data, n, e.params.Alpha, e.params.DT, e.dx, e.dy, t)
	})
	d.run(e.interiorTiles, func(t tile) {
		commitTile(e.cur.data, e.next.data, n, t)
	})
	e.clock.advance(e.params.DT)
	e.state = engineStepping
}

// runSteps executes the configured number of steps and stops the wall
// clock. With zero steps the initialized field is left untouched.
func (e *engine) runSteps(d dispatcher) error {
	if e.state != engineInitialized {
		return fmt.Errorf("engine: runSteps called in state %d", e.state)
	}
	for s := 0; s < e.params.NSteps; s++ {
		e.step(d)
	}
	e.clock.stopRun()
	return nil
}

// interior returns a copy of the current field's interior, the physically
// valid result after any completed step (or the initial condition when no
// steps have run).
func (e *engine) interior() []float64 {
	return e.cur.interior(ghostWidth)
}

// finalize releases the field buffers. The engine cannot be reused.
func (e *engine) finalize() {
	e.cur = nil
	e.next = nil
	e.state = engineFinalized
}
