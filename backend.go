package main

import "fmt"

// dispatcher abstracts how one phase's tiles are executed. run returns only
// once every tile has finished, so a run call is a full barrier between
// phases; the engine never overlaps two phases. The two CPU dispatchers
// must produce identical numerical results for any tile count, since they
// execute the same kernels over the same partition.
type dispatcher interface {
	run(tiles []tile, fn func(tile))
	close()
}

// newDispatcher builds the CPU dispatcher for the named backend. The OpenCL
// backend does not fit this interface (whole steps run on the device) and is
// handled separately.
func newDispatcher(name string, workers int) (dispatcher, error) {
	switch name {
	case backendParallel:
		return parallelDispatcher{}, nil
	case backendPool:
		return newPoolDispatcher(workers), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
