package kernels

import (
	"fmt"
	"io"
	"strings"
)

// PlotRowTerminal writes one row of a kernel matrix as a horizontal bar chart, one bar
// per column, in column order. Bars are scaled between the row minimum and maximum.
func PlotRowTerminal(w io.Writer, row []float64, title string) {
	if len(row) == 0 {
		return
	}

	minVal, maxVal := row[0], row[0]
	for _, v := range row {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}

	fmt.Fprintf(w, "\n%s (Terminal Plot):\n", title)
	fmt.Fprintln(w, "  Column | Value    | Bar Chart")
	fmt.Fprintln(w, "---------|----------|"+strings.Repeat("-", 50))

	maxBarWidth := 50
	for col, v := range row {
		var barWidth int
		if maxVal != minVal {
			barWidth = int((v - minVal) / (maxVal - minVal) * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%8d | %.6f | %s\n", col, v, bar)
	}

	fmt.Fprintf(w, "\nScale: Min=%.6f, Max=%.6f\n", minVal, maxVal)
}
