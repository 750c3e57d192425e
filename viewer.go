package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// viewer renders the evolving temperature field as a heat map while the
// engine steps in the background. Each frame advances the simulation by a
// bounded number of steps; once the configured step count is reached the
// window closes and the normal report path runs.
type viewer struct {
	eng           *engine
	d             dispatcher
	stepsPerFrame int
	stepsRun      int
	pixels        []byte
	lastSim       time.Duration
}

func newViewer(eng *engine, d dispatcher, stepsPerFrame int) *viewer {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	n := eng.params.NCells
	return &viewer{
		eng:           eng,
		d:             d,
		stepsPerFrame: stepsPerFrame,
		pixels:        make([]byte, n*n*4),
	}
}

// Update advances the simulation by up to stepsPerFrame steps.
func (v *viewer) Update() error {
	remaining := v.eng.params.NSteps - v.stepsRun
	if remaining <= 0 {
		v.eng.clock.stopRun()
		return ebiten.Termination
	}
	steps := v.stepsPerFrame
	if steps > remaining {
		steps = remaining
	}
	start := time.Now()
	for i := 0; i < steps; i++ {
		v.eng.step(v.d)
	}
	v.stepsRun += steps
	v.lastSim = time.Since(start)
	return nil
}

// Draw maps the interior temperatures onto a blue-to-red ramp. The pulse
// peaks at 2 on a background of 1, so values are normalized against that
// range before clamping.
func (v *viewer) Draw(screen *ebiten.Image) {
	n := v.eng.params.NCells
	cur := v.eng.cur.view()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t := cur.at(i+ghostWidth, j+ghostWidth) - 1
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			base := (i*n + j) * 4
			v.pixels[base] = byte(255 * t)
			v.pixels[base+1] = byte(40 * t)
			v.pixels[base+2] = byte(255 * (1 - t))
			v.pixels[base+3] = 255
		}
	}
	screen.WritePixels(v.pixels)

	msg := fmt.Sprintf("step %d/%d\nsim time %.6f\nsim %.2f ms/frame",
		v.stepsRun, v.eng.params.NSteps, v.eng.clock.simTime, v.lastSim.Seconds()*1000)
	ebitenutil.DebugPrint(screen, msg)
}

// Layout reports the logical screen size, one pixel per interior cell.
func (v *viewer) Layout(_, _ int) (int, int) {
	n := v.eng.params.NCells
	return n, n
}

// runViewer drives a full run under the live window, then reports and
// finalizes exactly like the headless path.
func runViewer(p simParams, d dispatcher) error {
	eng := newEngine(p)
	if err := eng.initialize(d); err != nil {
		return err
	}
	if p.PrintGrid {
		printGrid(os.Stdout, eng.cur.data, eng.cur.side)
	}
	ebiten.SetWindowSize(viewerWindowSize, viewerWindowSize)
	ebiten.SetWindowTitle("heat2d")
	if err := ebiten.RunGame(newViewer(eng, d, *stepsPerFrameFlag)); err != nil {
		return err
	}
	eng.clock.stopRun()
	report(eng, p)
	eng.finalize()
	return nil
}
