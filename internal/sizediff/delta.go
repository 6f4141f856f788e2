package sizediff

import (
	"math"
	"strconv"
)

// DeltaText formats a byte delta together with its percentage difference, e.g. "+5 kB (25%)".
// The percentage is left out for deltas of at most one byte.
func DeltaText(delta int64, difference float64) string {
	text := FormatBytes(delta)
	if delta > 0 {
		text = "+" + text
	}

	if delta != 0 && abs(delta) > 1 {
		text += " (" + formatPercent(math.Abs(difference)) + "%)"
	}

	return text
}

// IconForDifference returns the severity marker for a percentage difference, or "" when
// the change is below 5% in either direction.
func IconForDifference(difference float64) string {
	switch {
	case difference >= 50:
		return "🆘"
	case difference >= 20:
		return "🚨"
	case difference >= 10:
		return "⚠️"
	case difference >= 5:
		return "🔍"
	case difference <= -50:
		return "🏆"
	case difference <= -20:
		return "🎉"
	case difference <= -10:
		return "👏"
	case difference <= -5:
		return "✅"
	default:
		return ""
	}
}

// formatPercent prints the shortest representation of a percentage.
// A zero baseline yields a non-finite value which is printed as-is.
func formatPercent(v float64) string {
	switch {
	case math.IsInf(v, 0):
		return "Infinity"
	case math.IsNaN(v):
		return "NaN"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
