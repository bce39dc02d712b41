package exporter

import "strconv"

// formatNumber renders a float with the shortest exact decimal representation,
// so 53000 stays "53000" and 0.045 stays "0.045".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
