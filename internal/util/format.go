package util

import (
	"fmt"
	"time"
)

// FormatKeyUnits renders a distance in key units with a sensible precision.
func FormatKeyUnits(u float64) string {
	return fmt.Sprintf("%.2fu", u)
}

// FormatMillimeters renders a physical distance, scaling up to meters or
// kilometers for large inputs.
func FormatMillimeters(mm float64) string {
	switch {
	case mm >= 1_000_000:
		return fmt.Sprintf("%.3fkm", mm/1_000_000)
	case mm >= 1000:
		return fmt.Sprintf("%.2fm", mm/1000)
	default:
		return fmt.Sprintf("%.1fmm", mm)
	}
}

// FormatMillis renders a millisecond count as a human duration
func FormatMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", ms)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// FormatCount renders a count with K/M suffixes
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}
