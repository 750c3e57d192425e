//go:build !opencl

package main

import "errors"

type openCLHeatSolver struct{}

func newOpenCLHeatSolver(_ simParams) (*openCLHeatSolver, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *openCLHeatSolver) Upload(_ []float64) error {
	return errors.New("OpenCL solver unavailable")
}

func (s *openCLHeatSolver) RunSteps(_ int) error {
	return errors.New("OpenCL solver unavailable")
}

func (s *openCLHeatSolver) Download(_, _ []float64) error {
	return errors.New("OpenCL solver unavailable")
}

func (s *openCLHeatSolver) Close() {}

func (s *openCLHeatSolver) DeviceName() string { return "" }
