package main

import "math"

// The kernels below are the full per-cell work of the solver. They operate
// on raw buffers with precomputed bases rather than going through gridView
// so the inner loops stay free of repeated index arithmetic. Each kernel
// takes a tile of the flattened interior range [0, ncells²) and touches only
// the cells that tile owns, which is what makes unordered parallel dispatch
// within a phase safe.

// fillBoundaryRange copies interior edge cells into the ghost margin for
// indices [start, end) of [ghostWidth, side-ghostWidth). The rule is a
// reflective copy: each ghost row/column takes the values of the interior
// row/column one layer in from the opposite edge of the margin. It is not a
// physical periodic or Dirichlet condition.
func fillBoundaryRange(grid []float64, side, start, end int) {
	last := side - 1
	for i := start; i < end; i++ {
		// top and bottom ghost rows
		grid[i] = grid[i+side]
		grid[i+side*last] = grid[i+side*(last-1)]

		// left and right ghost columns
		grid[i*side] = grid[i*side+1]
		grid[i*side+last] = grid[i*side+last-1]
	}
}

// fillBoundaries fills the whole ghost margin in one call.
func fillBoundaries(grid []float64, side int) {
	fillBoundaryRange(grid, side, ghostWidth, side-ghostWidth)
}

// initTile seeds the radial pulse phi(x,y) = 1 + exp(-r²/0.01) into the
// interior of the ghosted grid for one tile. Cell centers map to the unit
// square via x = -0.5 + dx*(i - ghostWidth).
func initTile(grid []float64, ncells int, dx, dy float64, t tile) {
	side := ncells + nGhosts
	for pos := t.start; pos < t.start+t.length; pos++ {
		i := ghostWidth + pos/ncells
		j := ghostWidth + pos%ncells
		x := domainMin + dx*float64(i-ghostWidth)
		y := domainMin + dy*float64(j-ghostWidth)
		r2 := (x*x + y*y) / pulseWidth
		grid[i*side+j] = 1 + math.Exp(-r2)
	}
}

// updateTile advances one tile of interior cells by a single explicit Jacobi
// step, reading only cur (including its ghost cells) and writing only next.
// The buffers must not alias.
func updateTile(cur, next []float64, ncells int, alpha, dt, dx, dy float64, t tile) {
	side := ncells + nGhosts
	dx2 := dx * dx
	dy2 := dy * dy
	for pos := t.start; pos < t.start+t.length; pos++ {
		i := ghostWidth + pos/ncells
		j := ghostWidth + pos%ncells
		c := cur[i*side+j]
		next[(i-ghostWidth)*ncells+(j-ghostWidth)] = c +
			alpha*dt*((cur[(i+1)*side+j]-2*c+cur[(i-1)*side+j])/dx2+
				(cur[i*side+j+1]-2*c+cur[i*side+j-1])/dy2)
	}
}

// commitTile copies one tile of next back into the interior of cur,
// restoring the invariant that cur holds the latest field before the next
// boundary fill. A pointer swap is impossible because only cur carries the
// ghost margin.
func commitTile(cur, next []float64, ncells int, t tile) {
	side := ncells + nGhosts
	for pos := t.start; pos < t.start+t.length; pos++ {
		i := ghostWidth + pos/ncells
		j := ghostWidth + pos%ncells
		cur[i*side+j] = next[(i-ghostWidth)*ncells+(j-ghostWidth)]
	}
}
