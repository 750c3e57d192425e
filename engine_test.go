package main

import (
	"math"
	"sync/atomic"
	"testing"
)

func runToInterior(t *testing.T, p simParams, d dispatcher) []float64 {
	t.Helper()
	eng := newEngine(p)
	if err := eng.initialize(d); err != nil {
		t.Fatal(err)
	}
	if err := eng.runSteps(d); err != nil {
		t.Fatal(err)
	}
	out := eng.interior()
	eng.finalize()
	return out
}

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return 0
	}
	return math.Abs(a-b) / scale
}

func TestBackendEquivalence(t *testing.T) {
	base := simParams{NCells: 16, NSteps: 25, Alpha: 0.5, DT: 1e-5, NTiles: 1}
	reference := runToInterior(t, base, parallelDispatcher{})

	for _, ntiles := range []int{1, 3, 7, 16} {
		p := base
		p.NTiles = ntiles

		got := runToInterior(t, p, parallelDispatcher{})
		for i := range reference {
			if relDiff(got[i], reference[i]) > 1e-12 {
				t.Fatalf("parallel backend, %d tiles: cell %d = %v, want %v", ntiles, i, got[i], reference[i])
			}
		}

		pool := newPoolDispatcher(ntiles)
		got = runToInterior(t, p, pool)
		pool.close()
		for i := range reference {
			if relDiff(got[i], reference[i]) > 1e-12 {
				t.Fatalf("pool backend, %d tiles: cell %d = %v, want %v", ntiles, i, got[i], reference[i])
			}
		}
	}
}

func TestZeroStepIdempotence(t *testing.T) {
	p := simParams{NCells: 12, NSteps: 0, Alpha: 0.5, DT: 1e-5, NTiles: 4}
	d := parallelDispatcher{}

	initOnly := newEngine(p)
	if err := initOnly.initialize(d); err != nil {
		t.Fatal(err)
	}
	want := initOnly.interior()
	initOnly.finalize()

	got := runToInterior(t, p, d)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %v after zero steps, want %v", i, got[i], want[i])
		}
	}
}

func TestSymmetryPreservedAcrossSteps(t *testing.T) {
	p := simParams{NCells: 9, NSteps: 50, Alpha: 0.5, DT: 1e-5, NTiles: 3}
	field := runToInterior(t, p, parallelDispatcher{})

	n := p.NCells
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := field[i*n+j]
			b := field[(n-1-i)*n+n-1-j]
			if math.Abs(a-b) > 1e-12 {
				t.Fatalf("field not symmetric at (%d,%d): %v vs %v", i, j, a, b)
			}
		}
	}
}

func TestDiffusionFlattensPulse(t *testing.T) {
	p := simParams{NCells: 16, NSteps: 200, Alpha: 0.5, DT: 1e-5, NTiles: 4}
	d := parallelDispatcher{}

	eng := newEngine(p)
	if err := eng.initialize(d); err != nil {
		t.Fatal(err)
	}
	before := eng.interior()
	if err := eng.runSteps(d); err != nil {
		t.Fatal(err)
	}
	after := eng.interior()
	eng.finalize()

	peakBefore, peakAfter := 0.0, 0.0
	for i := range before {
		peakBefore = math.Max(peakBefore, before[i])
		peakAfter = math.Max(peakAfter, after[i])
	}
	if peakAfter >= peakBefore {
		t.Fatalf("peak did not decay: before %v, after %v", peakBefore, peakAfter)
	}
}

func TestSimClockAccumulatesTime(t *testing.T) {
	p := simParams{NCells: 8, NSteps: 10, Alpha: 0.5, DT: 1e-5, NTiles: 2}
	eng := newEngine(p)
	d := parallelDispatcher{}
	if err := eng.initialize(d); err != nil {
		t.Fatal(err)
	}
	if err := eng.runSteps(d); err != nil {
		t.Fatal(err)
	}
	want := float64(p.NSteps) * p.DT
	if math.Abs(eng.clock.simTime-want) > 1e-15 {
		t.Fatalf("simulated time = %v, want %v", eng.clock.simTime, want)
	}
	if eng.clock.elapsed < 0 {
		t.Fatalf("negative elapsed duration %v", eng.clock.elapsed)
	}
	eng.finalize()
}

func TestEngineStateGuards(t *testing.T) {
	p := simParams{NCells: 8, NSteps: 1, Alpha: 0.5, DT: 1e-5, NTiles: 2}
	d := parallelDispatcher{}

	eng := newEngine(p)
	if err := eng.runSteps(d); err == nil {
		t.Fatal("runSteps before initialize succeeded")
	}
	if err := eng.initialize(d); err != nil {
		t.Fatal(err)
	}
	if err := eng.initialize(d); err == nil {
		t.Fatal("double initialize succeeded")
	}
}

func TestEngineRejectsBadTileCount(t *testing.T) {
	p := simParams{NCells: 8, NSteps: 1, Alpha: 0.5, DT: 1e-5, NTiles: 0}
	eng := newEngine(p)
	if err := eng.initialize(parallelDispatcher{}); err == nil {
		t.Fatal("initialize with zero tiles succeeded")
	}
}

func TestPoolDispatcherBarrier(t *testing.T) {
	d := newPoolDispatcher(4)
	defer d.close()

	tiles, err := partition(64, 9)
	if err != nil {
		t.Fatal(err)
	}

	// Phase two reads what phase one wrote; a broken barrier shows up as a
	// zero in the sums.
	buf := make([]float64, 64)
	d.run(tiles, func(tl tile) {
		for i := tl.start; i < tl.start+tl.length; i++ {
			buf[i] = 1
		}
	})
	var total int64
	d.run(tiles, func(tl tile) {
		var sum int64
		for i := tl.start; i < tl.start+tl.length; i++ {
			sum += int64(buf[i])
		}
		atomic.AddInt64(&total, sum)
	})
	if total != 64 {
		t.Fatalf("phase sum = %d, want 64", total)
	}
}

func TestPoolDispatcherSkipsEmptyTiles(t *testing.T) {
	d := newPoolDispatcher(2)
	defer d.close()

	tiles, err := partition(3, 8)
	if err != nil {
		t.Fatal(err)
	}
	var calls int64
	d.run(tiles, func(tl tile) {
		atomic.AddInt64(&calls, 1)
	})
	// 3/8 leaves seven zero-length tiles and one of length 3.
	if calls != 1 {
		t.Fatalf("ran %d non-empty tiles, want 1", calls)
	}
}
