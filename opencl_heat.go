//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// openCLHeatSolver runs the whole step loop on an OpenCL device. Both field
// buffers live on the device between steps; the host only uploads the
// seeded grid once and reads the result back after the last step. Requires
// a device with fp64 support (cl_khr_fp64).
type openCLHeatSolver struct {
	context      *cl.Context
	queue        *cl.CommandQueue
	program      *cl.Program
	fillKernel   *cl.Kernel
	stepKernel   *cl.Kernel
	commitKernel *cl.Kernel
	curBuf       *cl.MemObject
	nextBuf      *cl.MemObject
	ncells       int
	side         int
	deviceName   string
}

const heatKernelSource = `#pragma OPENCL EXTENSION cl_khr_fp64 : enable

__kernel void fill_boundaries(
    const int side,
    __global double* cur)
{
    int i = get_global_id(0) + 1;
    int last = side - 1;
    if (i >= last) {
        return;
    }
    cur[i] = cur[i + side];
    cur[i + side * last] = cur[i + side * (last - 1)];
    cur[i * side] = cur[i * side + 1];
    cur[i * side + last] = cur[i * side + last - 1];
}

__kernel void heat_step(
    const int ncells,
    const double alpha,
    const double dt,
    const double dx,
    const double dy,
    __global const double* cur,
    __global double* next_buffer)
{
    int pos = get_global_id(0);
    if (pos >= ncells * ncells) {
        return;
    }
    int side = ncells + 2;
    int i = 1 + pos / ncells;
    int j = 1 + pos % ncells;
    double c = cur[i * side + j];
    next_buffer[(i - 1) * ncells + (j - 1)] = c + alpha * dt *
        ((cur[(i + 1) * side + j] - 2.0 * c + cur[(i - 1) * side + j]) / (dx * dx) +
         (cur[i * side + j + 1] - 2.0 * c + cur[i * side + j - 1]) / (dy * dy));
}

__kernel void commit_interior(
    const int ncells,
    __global double* cur,
    __global const double* next_buffer)
{
    int pos = get_global_id(0);
    if (pos >= ncells * ncells) {
        return;
    }
    int side = ncells + 2;
    int i = 1 + pos / ncells;
    int j = 1 + pos % ncells;
    cur[i * side + j] = next_buffer[(i - 1) * ncells + (j - 1)];
}`

func newOpenCLHeatSolver(p simParams) (*openCLHeatSolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	var device *cl.Device
	for _, pf := range platforms {
		devices, derr := pf.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, pf := range platforms {
			devices, derr := pf.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{heatKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program (device may lack fp64 support): %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	fillKernel, err := program.CreateKernel("fill_boundaries")
	if err != nil {
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating boundary kernel: %w", err)
	}
	stepKernel, err := program.CreateKernel("heat_step")
	if err != nil {
		fillKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating step kernel: %w", err)
	}
	commitKernel, err := program.CreateKernel("commit_interior")
	if err != nil {
		stepKernel.Release()
		fillKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating commit kernel: %w", err)
	}

	side := p.NCells + nGhosts
	doubleSize := int(unsafe.Sizeof(float64(0)))
	curBuf, err := context.CreateEmptyBuffer(cl.MemReadWrite, side*side*doubleSize)
	if err != nil {
		commitKernel.Release()
		stepKernel.Release()
		fillKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating current buffer: %w", err)
	}
	nextBuf, err := context.CreateEmptyBuffer(cl.MemReadWrite, p.NCells*p.NCells*doubleSize)
	if err != nil {
		curBuf.Release()
		commitKernel.Release()
		stepKernel.Release()
		fillKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating next buffer: %w", err)
	}

	solver := &openCLHeatSolver{
		context:      context,
		queue:        queue,
		program:      program,
		fillKernel:   fillKernel,
		stepKernel:   stepKernel,
		commitKernel: commitKernel,
		curBuf:       curBuf,
		nextBuf:      nextBuf,
		ncells:       p.NCells,
		side:         side,
		deviceName:   device.Name(),
	}
	if err := solver.bindArgs(p); err != nil {
		solver.Close()
		return nil, err
	}
	return solver, nil
}

// bindArgs sets the kernel arguments once; the buffer bindings never change
// because the device buffers are allocated exactly once per run.
func (s *openCLHeatSolver) bindArgs(p simParams) error {
	if err := s.fillKernel.SetArgInt32(0, int32(s.side)); err != nil {
		return fmt.Errorf("setting boundary kernel arguments: %w", err)
	}
	if err := s.fillKernel.SetArgBuffer(1, s.curBuf); err != nil {
		return fmt.Errorf("setting boundary kernel arguments: %w", err)
	}

	alpha, dt := p.Alpha, p.DT
	dx, dy := p.dx(), p.dx()
	doubleSize := unsafe.Sizeof(float64(0))
	if err := s.stepKernel.SetArgInt32(0, int32(s.ncells)); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}
	if err := s.stepKernel.SetArgUnsafe(1, int(doubleSize), unsafe.Pointer(&alpha)); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}
	if err := s.stepKernel.SetArgUnsafe(2, int(doubleSize), unsafe.Pointer(&dt)); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}
	if err := s.stepKernel.SetArgUnsafe(3, int(doubleSize), unsafe.Pointer(&dx)); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}
	if err := s.stepKernel.SetArgUnsafe(4, int(doubleSize), unsafe.Pointer(&dy)); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}
	if err := s.stepKernel.SetArgBuffer(5, s.curBuf); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}
	if err := s.stepKernel.SetArgBuffer(6, s.nextBuf); err != nil {
		return fmt.Errorf("setting step kernel arguments: %w", err)
	}

	if err := s.commitKernel.SetArgInt32(0, int32(s.ncells)); err != nil {
		return fmt.Errorf("setting commit kernel arguments: %w", err)
	}
	if err := s.commitKernel.SetArgBuffer(1, s.curBuf); err != nil {
		return fmt.Errorf("setting commit kernel arguments: %w", err)
	}
	if err := s.commitKernel.SetArgBuffer(2, s.nextBuf); err != nil {
		return fmt.Errorf("setting commit kernel arguments: %w", err)
	}
	return nil
}

// Upload writes the seeded ghosted grid into the device's current buffer.
func (s *openCLHeatSolver) Upload(cur []float64) error {
	if len(cur) != s.side*s.side {
		return fmt.Errorf("unexpected current buffer size %d", len(cur))
	}
	byteLen := len(cur) * int(unsafe.Sizeof(float64(0)))
	if _, err := s.queue.EnqueueWriteBuffer(s.curBuf, true, 0, byteLen, unsafe.Pointer(&cur[0]), nil); err != nil {
		return fmt.Errorf("writing current buffer: %w", err)
	}
	return nil
}

// RunSteps enqueues the fill/update/commit sequence for every step. In-order
// queue execution provides the same phase ordering the CPU backends get
// from their barriers.
func (s *openCLHeatSolver) RunSteps(steps int) error {
	if steps <= 0 {
		return nil
	}
	interior := []int{s.ncells * s.ncells}
	edges := []int{s.side - nGhosts}
	for step := 0; step < steps; step++ {
		if _, err := s.queue.EnqueueNDRangeKernel(s.fillKernel, nil, edges, nil, nil); err != nil {
			return fmt.Errorf("enqueueing boundary kernel: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.stepKernel, nil, interior, nil, nil); err != nil {
			return fmt.Errorf("enqueueing step kernel: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.commitKernel, nil, interior, nil, nil); err != nil {
			return fmt.Errorf("enqueueing commit kernel: %w", err)
		}
	}
	if err := s.queue.Finish(); err != nil {
		return fmt.Errorf("flushing command queue: %w", err)
	}
	return nil
}

// Download reads both device buffers back into host memory.
func (s *openCLHeatSolver) Download(cur, next []float64) error {
	doubleSize := int(unsafe.Sizeof(float64(0)))
	if len(cur) != s.side*s.side || len(next) != s.ncells*s.ncells {
		return fmt.Errorf("unexpected field buffer sizes %d/%d", len(cur), len(next))
	}
	if _, err := s.queue.EnqueueReadBuffer(s.curBuf, true, 0, len(cur)*doubleSize, unsafe.Pointer(&cur[0]), nil); err != nil {
		return fmt.Errorf("reading current buffer: %w", err)
	}
	if _, err := s.queue.EnqueueReadBuffer(s.nextBuf, true, 0, len(next)*doubleSize, unsafe.Pointer(&next[0]), nil); err != nil {
		return fmt.Errorf("reading next buffer: %w", err)
	}
	return nil
}

func (s *openCLHeatSolver) Close() {
	if s.nextBuf != nil {
		s.nextBuf.Release()
		s.nextBuf = nil
	}
	if s.curBuf != nil {
		s.curBuf.Release()
		s.curBuf = nil
	}
	if s.commitKernel != nil {
		s.commitKernel.Release()
		s.commitKernel = nil
	}
	if s.stepKernel != nil {
		s.stepKernel.Release()
		s.stepKernel = nil
	}
	if s.fillKernel != nil {
		s.fillKernel.Release()
		s.fillKernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

func (s *openCLHeatSolver) DeviceName() string {
	return s.deviceName
}
