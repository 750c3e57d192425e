package main

import "fmt"

// tile describes one contiguous span of a flattened index range. Tiles are
// the unit of dispatch for the parallel backends.
type tile struct {
	start  int
	length int
}

// partition splits [0, total) into exactly count contiguous tiles. Every
// tile gets total/count elements and the last tile absorbs the remainder,
// so the tiles cover the range exactly once. When count exceeds total the
// middle tiles come out zero-length; callers schedule those as no-ops.
func partition(total, count int) ([]tile, error) {
	if total <= 0 {
		return nil, fmt.Errorf("partition: domain size must be positive, got %d", total)
	}
	if count < 1 {
		return nil, fmt.Errorf("partition: tile count must be at least 1, got %d", count)
	}
	base := total / count
	tiles := make([]tile, count)
	for t := range tiles {
		tiles[t] = tile{start: t * base, length: base}
	}
	tiles[count-1].length += total % count
	return tiles, nil
}

// assignTiles distributes tiles across workers in round-robin fashion.
func assignTiles(workers int, tiles []tile) [][]tile {
	if workers < 1 {
		workers = 1
	}
	assigned := make([][]tile, workers)
	for idx, t := range tiles {
		w := idx % workers
		assigned[w] = append(assigned[w], t)
	}
	return assigned
}
