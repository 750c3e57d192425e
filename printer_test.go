package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintGrid(t *testing.T) {
	grid := []float64{1, 2.25, 3.5, 4}
	var buf bytes.Buffer
	printGrid(&buf, grid, 2)
	want := "1.00, 2.25\n3.50, 4.00\n"
	if buf.String() != want {
		t.Fatalf("printGrid output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrintGridRowCount(t *testing.T) {
	const side = 5
	grid := make([]float64, side*side)
	var buf bytes.Buffer
	printGrid(&buf, grid, side)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != side {
		t.Fatalf("got %d lines, want %d", len(lines), side)
	}
	for i, line := range lines {
		if got := strings.Count(line, ",") + 1; got != side {
			t.Fatalf("line %d has %d values, want %d", i, got, side)
		}
	}
}

func TestParamsPrint(t *testing.T) {
	p := simParams{NCells: 32, NSteps: 100, Alpha: 0.5, DT: 1e-5, NTiles: 4}
	var buf bytes.Buffer
	p.print(&buf)
	out := buf.String()
	for _, want := range []string{"ncells:", "32", "nsteps:", "100", "alpha:", "0.5", "dt:", "1e-05", "ntiles:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}
