package main

// Simulation defaults and fixed geometry constants. The physical domain is
// the unit square {[-0.5, -0.5], [0.5, 0.5]} with the origin at its center.
const (
	defaultNCells = 32
	defaultNSteps = 100
	defaultAlpha  = 0.5
	defaultDT     = 1e-5
	defaultTiles  = 4

	// ghostWidth is the halo depth on each side of the interior region. The
	// 5-point stencil reaches one cell, so a single ghost layer suffices.
	ghostWidth = 1
	nGhosts    = 2 * ghostWidth

	domainMin  = -0.5
	pulseWidth = 0.01

	defaultStepsPerFrame = 50
	viewerWindowSize     = 512
)

// Backend names accepted by the -backend flag.
const (
	backendParallel = "parallel"
	backendPool     = "pool"
	backendOpenCL   = "opencl"
)
