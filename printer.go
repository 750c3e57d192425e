package main

import (
	"bufio"
	"fmt"
	"io"
)

// printGrid writes a side×side row-major buffer as one line per row with
// comma-separated values at two decimal places.
func printGrid(w io.Writer, grid []float64, side int) {
	bw := bufio.NewWriter(w)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			if j > 0 {
				bw.WriteString(", ")
			}
			fmt.Fprintf(bw, "%.2f", grid[i*side+j])
		}
		bw.WriteByte('\n')
	}
	bw.Flush()
}
