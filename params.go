package main

import (
	"flag"
	"fmt"
	"io"
)

// simParams is the immutable parameter bundle consumed by the engine. It is
// resolved once at startup from flags plus an optional HCL file and never
// mutated afterwards.
type simParams struct {
	NCells    int
	NSteps    int
	Alpha     float64
	DT        float64
	NTiles    int
	PrintGrid bool
	PrintTime bool
	Help      bool
}

// resolveParams builds the parameter bundle from the parsed flags, then lets
// a -config file fill in any field the command line did not set explicitly.
func resolveParams() (simParams, error) {
	p := simParams{
		NCells:    *ncellsFlag,
		NSteps:    *nstepsFlag,
		Alpha:     *alphaFlag,
		DT:        *dtFlag,
		NTiles:    *ntilesFlag,
		PrintGrid: *printGridFlag,
		PrintTime: *printTimeFlag,
		Help:      *helpFlag,
	}
	if *configFlag == "" {
		return p, nil
	}
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if err := applyParamsFile(*configFlag, &p, setFlags); err != nil {
		return p, err
	}
	return p, nil
}

// validate enforces the caller contract: the grid needs at least one
// interior cell surrounded by ghosts, and the partitioner needs a positive
// tile count. Stability of alpha*dt/dx² is deliberately not checked; an
// unstable choice diverges silently rather than failing.
func (p simParams) validate() error {
	if p.NCells < 3 {
		return fmt.Errorf("ncells must be at least 3, got %d", p.NCells)
	}
	if p.NSteps < 0 {
		return fmt.Errorf("nsteps must not be negative, got %d", p.NSteps)
	}
	if p.NTiles < 1 {
		return fmt.Errorf("ntiles must be at least 1, got %d", p.NTiles)
	}
	return nil
}

// dx returns the uniform cell spacing of the unit-square domain. dy equals
// dx on the square grid.
func (p simParams) dx() float64 {
	return 1.0 / float64(p.NCells-1)
}

// print writes the resolved parameter bundle, used for -help output.
func (p simParams) print(w io.Writer) {
	fmt.Fprintf(w, "ncells:     %d\n", p.NCells)
	fmt.Fprintf(w, "nsteps:     %d\n", p.NSteps)
	fmt.Fprintf(w, "alpha:      %g\n", p.Alpha)
	fmt.Fprintf(w, "dt:         %g\n", p.DT)
	fmt.Fprintf(w, "ntiles:     %d\n", p.NTiles)
	fmt.Fprintf(w, "print-grid: %t\n", p.PrintGrid)
	fmt.Fprintf(w, "print-time: %t\n", p.PrintTime)
}
