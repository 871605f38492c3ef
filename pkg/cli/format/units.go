// Package format holds the pure presentation helpers shared by the TUI and
// the plain command-line output.
package format

import (
	"fmt"
	"math"
	"strconv"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatByteSize renders a byte count in base-1024 units, capped at GB,
// with at most two decimals and no trailing zeros. Zero and negative
// inputs render as "0 Bytes".
func FormatByteSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	if v >= 1024 && i < len(byteUnits)-1 {
		v = math.Round(v/1024*100) / 100
		i++
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// FormatUptime renders seconds as "{d}d {h}h {m}m", dropping the leading
// zero units. Seconds are truncated, so 45 renders as "0m".
func FormatUptime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(seconds)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatViewCount abbreviates large counts: 1500 -> "1.5K", 2000000 -> "2.0M".
func FormatViewCount(n int64) string {
	switch {
	case n <= 0:
		return "0"
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatViewText prefers the scraper's raw view text and falls back to the
// abbreviated numeric count.
func FormatViewText(raw string, numeric *float64) string {
	if raw != "" {
		return raw
	}
	if numeric == nil {
		return "0"
	}
	return FormatViewCount(roundHalfUp(*numeric))
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// FormatNumber abbreviates an int the same way FormatViewCount does.
func FormatNumber(n int) string {
	return FormatViewCount(int64(n))
}

// FormatPercentage renders a fraction in [0, 1] as a whole percentage.
func FormatPercentage(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", int64(math.Round(fraction*100)))
}
