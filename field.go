package main

// scalarField owns one square buffer of the solver's double-buffered pair.
// The "current" field carries a ghost margin (side = ncells + nGhosts) while
// the "next" field is bare, so the two are never layout-compatible and a
// step ends with an elementwise copy back rather than a pointer swap.
type scalarField struct {
	side int
	data []float64
}

// newScalarField allocates a side×side buffer in row-major order.
func newScalarField(side int) *scalarField {
	return &scalarField{
		side: side,
		data: make([]float64, side*side),
	}
}

// view returns a 2D index adapter over the field's buffer.
func (f *scalarField) view() gridView {
	return gridView{data: f.data, side: f.side}
}

// interior copies the region inside the ghost margin into a fresh ncells²
// slice. Fields without a margin are returned whole.
func (f *scalarField) interior(ghost int) []float64 {
	n := f.side - 2*ghost
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		src := (i+ghost)*f.side + ghost
		copy(out[i*n:(i+1)*n], f.data[src:src+n])
	}
	return out
}

// gridView maps (row, col) coordinates onto a flat row-major buffer. It does
// not own the buffer and is only valid while the backing field is alive.
type gridView struct {
	data []float64
	side int
}

func (v gridView) at(i, j int) float64 {
	return v.data[i*v.side+j]
}

func (v gridView) set(i, j int, val float64) {
	v.data[i*v.side+j] = val
}
