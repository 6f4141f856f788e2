package sizediff

import (
	"math"
	"strconv"
	"strings"
)

// byteUnits are the SI (power of 1000) units used for every size in a report
var byteUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatBytes converts a byte count into a human-readable string such as "5 kB" or "2.5 MB".
// Whole magnitudes print without decimals, everything else with one decimal place.
// Negative counts are prefixed with "-"; callers add "+" themselves where needed.
func FormatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	magnitude := math.Abs(float64(bytes))
	text := formatMagnitude(magnitude)
	if bytes < 0 {
		return "-" + text
	}
	return text
}

func formatMagnitude(n float64) string {
	if n < 1000 {
		return strconv.FormatFloat(n, 'f', 0, 64) + " " + byteUnits[0]
	}

	exp := 0
	scaled := n
	for scaled >= 1000 && exp < len(byteUnits)-1 {
		scaled /= 1000
		exp++
	}

	value := oneDecimal(scaled)
	// 999_950 rounds up to "1000 kB"; promote it to "1 MB"
	if value == "1000" && exp < len(byteUnits)-1 {
		exp++
		value = oneDecimal(scaled / 1000)
	}

	return value + " " + byteUnits[exp]
}

func oneDecimal(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}
