package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	flag.Parse()
	params, err := resolveParams()
	if err != nil {
		log.Fatalf("resolving parameters: %v", err)
	}
	if params.Help {
		params.print(os.Stdout)
		return
	}
	if err := params.validate(); err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			log.Fatalf("starting CPU profile: %v", err)
		}
		defer stop()
	}

	if err := run(params); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(p simParams) error {
	if *backendFlag == backendOpenCL {
		if *viewFlag {
			return errors.New("view mode requires a CPU backend")
		}
		return runOpenCL(p)
	}
	d, err := newDispatcher(*backendFlag, p.NTiles)
	if err != nil {
		return err
	}
	defer d.close()
	if *viewFlag {
		return runViewer(p, d)
	}
	return runCPU(p, d)
}

// runCPU is the headless path: initialize, step, report, release.
func runCPU(p simParams, d dispatcher) error {
	eng := newEngine(p)
	if err := eng.initialize(d); err != nil {
		return err
	}
	if p.PrintGrid {
		printGrid(os.Stdout, eng.cur.data, eng.cur.side)
	}
	if err := eng.runSteps(d); err != nil {
		return err
	}
	report(eng, p)
	eng.finalize()
	return nil
}

// runOpenCL seeds the field on the CPU, runs every step on the device, and
// reads the result back for reporting.
func runOpenCL(p simParams) error {
	eng := newEngine(p)
	if err := eng.initialize(parallelDispatcher{}); err != nil {
		return err
	}
	solver, err := newOpenCLHeatSolver(p)
	if err != nil {
		return err
	}
	defer solver.Close()
	log.Printf("OpenCL solver enabled (device: %s)", solver.DeviceName())

	if p.PrintGrid {
		printGrid(os.Stdout, eng.cur.data, eng.cur.side)
	}
	if err := solver.Upload(eng.cur.data); err != nil {
		return err
	}
	if err := solver.RunSteps(p.NSteps); err != nil {
		return err
	}
	if err := solver.Download(eng.cur.data, eng.next.data); err != nil {
		return err
	}
	eng.clock.simTime = float64(p.NSteps) * p.DT
	eng.clock.stopRun()
	report(eng, p)
	eng.finalize()
	return nil
}

// report prints timing and the final interior grid according to the
// parameter bundle's print flags.
func report(eng *engine, p simParams) {
	if p.PrintTime {
		fmt.Printf("Time: %.3f ms\n", eng.clock.elapsedMillis())
	}
	if p.PrintGrid {
		printGrid(os.Stdout, eng.interior(), p.NCells)
	}
}
