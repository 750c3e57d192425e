package main

import "flag"

// Command-line flags that control the simulation run. Each flag mirrors one
// field of the resolved parameter bundle; values from an optional -config
// file fill in whatever the command line leaves unset.
var (
	// ncellsFlag sets the number of interior cells per side of the square grid.
	ncellsFlag = flag.Int("ncells", defaultNCells, "interior cells per side of the square grid")

	// nstepsFlag sets how many explicit time steps to run.
	nstepsFlag = flag.Int("nsteps", defaultNSteps, "number of time steps to run")

	// alphaFlag sets the thermal diffusivity of the medium.
	alphaFlag = flag.Float64("alpha", defaultAlpha, "thermal diffusivity")

	// dtFlag sets the time step size. No stability check is performed; a
	// value violating the explicit-scheme bound diverges silently.
	dtFlag = flag.Float64("dt", defaultDT, "time step size")

	// ntilesFlag sets the number of tiles the domain is split into, which is
	// also the worker count of the pool backend.
	ntilesFlag = flag.Int("ntiles", defaultTiles, "number of tiles / worker goroutines")

	// backendFlag selects the execution strategy.
	backendFlag = flag.String("backend", backendParallel, "execution backend: parallel, pool, or opencl")

	// configFlag points at an optional HCL file with a simulation block.
	configFlag = flag.String("config", "", "HCL file providing simulation parameters")

	// printGridFlag prints the grid before and after the run.
	printGridFlag = flag.Bool("print-grid", false, "print the initial and final grid")

	// printTimeFlag prints the elapsed wall-clock time of the run.
	printTimeFlag = flag.Bool("print-time", false, "print elapsed wall-clock time in ms")

	// helpFlag prints the resolved parameter bundle and exits.
	helpFlag = flag.Bool("help", false, "print the resolved parameters and exit")

	// viewFlag opens a live heat-map window instead of running headless.
	viewFlag = flag.Bool("view", false, "open a live heat-map window")

	// stepsPerFrameFlag throttles how many simulation steps run per rendered
	// frame in view mode.
	stepsPerFrameFlag = flag.Int("steps-per-frame", defaultStepsPerFrame, "simulation steps per rendered frame in view mode")

	// cpuProfileFlag writes a CPU profile for the whole run.
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to the given path")
)
