package tui

import "math"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int { return int(math.Round(v)) }

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
