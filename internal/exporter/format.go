package exporter

import (
	"fmt"
	"math"
)

// formatFloat formats a float64 value for document output with exactly 2
// decimal places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer cell.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
