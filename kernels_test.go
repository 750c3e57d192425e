package main

import (
	"math"
	"testing"
)

// ghosted builds a side×side buffer with distinct values so copy errors are
// visible.
func ghosted(side int) []float64 {
	grid := make([]float64, side*side)
	for i := range grid {
		grid[i] = float64(i + 1)
	}
	return grid
}

func TestFillBoundariesExactCopies(t *testing.T) {
	const ncells = 3
	side := ncells + nGhosts
	grid := ghosted(side)
	want := make([]float64, len(grid))
	copy(want, grid)

	fillBoundaries(grid, side)

	last := side - 1
	for i := ghostWidth; i < side-ghostWidth; i++ {
		if grid[i] != want[i+side] {
			t.Errorf("top ghost %d = %v, want %v", i, grid[i], want[i+side])
		}
		if grid[i+side*last] != want[i+side*(last-1)] {
			t.Errorf("bottom ghost %d = %v, want %v", i, grid[i+side*last], want[i+side*(last-1)])
		}
		if grid[i*side] != want[i*side+1] {
			t.Errorf("left ghost %d = %v, want %v", i, grid[i*side], want[i*side+1])
		}
		if grid[i*side+last] != want[i*side+last-1] {
			t.Errorf("right ghost %d = %v, want %v", i, grid[i*side+last], want[i*side+last-1])
		}
	}

	// interior and corners must be untouched
	for i := 1; i < side-1; i++ {
		for j := 1; j < side-1; j++ {
			if grid[i*side+j] != want[i*side+j] {
				t.Errorf("interior (%d,%d) changed", i, j)
			}
		}
	}
	for _, corner := range []int{0, last, side * last, side*last + last} {
		if grid[corner] != want[corner] {
			t.Errorf("corner %d changed", corner)
		}
	}
}

func TestSingleStepHandCheck(t *testing.T) {
	// ncells=3 with dx=dy=1, alpha=0.5, dt=1: the center cell has only real
	// neighbors, so the 5-point result can be checked by hand.
	const ncells = 3
	side := ncells + nGhosts
	cur := make([]float64, side*side)
	view := gridView{data: cur, side: side}
	view.set(2, 2, 4)
	view.set(1, 2, 1)
	view.set(3, 2, 2)
	view.set(2, 1, 3)
	view.set(2, 3, 5)

	next := make([]float64, ncells*ncells)
	tiles, err := partition(ncells*ncells, 1)
	if err != nil {
		t.Fatal(err)
	}
	updateTile(cur, next, ncells, 0.5, 1.0, 1.0, 1.0, tiles[0])

	// lap_x = 2 - 2*4 + 1 = -5, lap_y = 5 - 2*4 + 3 = 0
	// next = 4 + 0.5*1*(-5 + 0) = 1.5
	if got := next[1*ncells+1]; got != 1.5 {
		t.Fatalf("center cell = %v, want 1.5", got)
	}
}

func TestCommitRestoresInterior(t *testing.T) {
	const ncells = 4
	side := ncells + nGhosts
	cur := make([]float64, side*side)
	next := make([]float64, ncells*ncells)
	for i := range next {
		next[i] = float64(i) * 0.5
	}
	tiles, err := partition(ncells*ncells, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, tl := range tiles {
		commitTile(cur, next, ncells, tl)
	}
	for i := 0; i < ncells; i++ {
		for j := 0; j < ncells; j++ {
			if cur[(i+ghostWidth)*side+j+ghostWidth] != next[i*ncells+j] {
				t.Fatalf("interior (%d,%d) = %v, want %v",
					i, j, cur[(i+ghostWidth)*side+j+ghostWidth], next[i*ncells+j])
			}
		}
	}
}

func TestInitialPulseSymmetry(t *testing.T) {
	const ncells = 8
	side := ncells + nGhosts
	grid := make([]float64, side*side)
	p := simParams{NCells: ncells}
	tiles, err := partition(ncells*ncells, 1)
	if err != nil {
		t.Fatal(err)
	}
	initTile(grid, ncells, p.dx(), p.dx(), tiles[0])

	for i := 1; i <= ncells; i++ {
		for j := 1; j <= ncells; j++ {
			a := grid[i*side+j]
			b := grid[(ncells+1-i)*side+ncells+1-j]
			if math.Abs(a-b) > 1e-12 {
				t.Fatalf("pulse not symmetric at (%d,%d): %v vs %v", i, j, a, b)
			}
		}
	}

	// background far from the pulse stays near 1, the peak stays below 2
	center := grid[(ncells/2)*side+ncells/2]
	cornerCell := grid[1*side+1]
	if center <= cornerCell {
		t.Fatalf("center %v not hotter than corner %v", center, cornerCell)
	}
	if center > 2 || cornerCell < 1 {
		t.Fatalf("pulse out of range: center %v, corner %v", center, cornerCell)
	}
}
