package main

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// paramsFile is the root schema of a -config file:
//
//	simulation {
//	  ncells = 64
//	  nsteps = 500
//	  alpha  = 0.5
//	  dt     = 1e-5
//	  ntiles = 8
//	}
type paramsFile struct {
	Simulation *paramsBlock `hcl:"simulation,block"`
}

// paramsBlock holds the optional attributes of a simulation block. Pointer
// fields distinguish "absent" from a zero value.
type paramsBlock struct {
	NCells    *int     `hcl:"ncells,optional"`
	NSteps    *int     `hcl:"nsteps,optional"`
	Alpha     *float64 `hcl:"alpha,optional"`
	DT        *float64 `hcl:"dt,optional"`
	NTiles    *int     `hcl:"ntiles,optional"`
	PrintGrid *bool    `hcl:"print_grid,optional"`
	PrintTime *bool    `hcl:"print_time,optional"`
}

// applyParamsFile overlays values from an HCL file onto p. A field is only
// taken from the file when the matching flag was not set on the command
// line, so explicit flags always win.
func applyParamsFile(path string, p *simParams, setFlags map[string]bool) error {
	var file paramsFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	if file.Simulation == nil {
		return fmt.Errorf("config %s: missing simulation block", path)
	}
	b := file.Simulation
	if b.NCells != nil && !setFlags["ncells"] {
		p.NCells = *b.NCells
	}
	if b.NSteps != nil && !setFlags["nsteps"] {
		p.NSteps = *b.NSteps
	}
	if b.Alpha != nil && !setFlags["alpha"] {
		p.Alpha = *b.Alpha
	}
	if b.DT != nil && !setFlags["dt"] {
		p.DT = *b.DT
	}
	if b.NTiles != nil && !setFlags["ntiles"] {
		p.NTiles = *b.NTiles
	}
	if b.PrintGrid != nil && !setFlags["print-grid"] {
		p.PrintGrid = *b.PrintGrid
	}
	if b.PrintTime != nil && !setFlags["print-time"] {
		p.PrintTime = *b.PrintTime
	}
	return nil
}
