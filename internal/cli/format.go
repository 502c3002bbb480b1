package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatPercent formats a volatility fraction as a percentage,
// e.g. 0.2543 with 2 digits becomes "25.43%".
func FormatPercent(fraction float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	return fmt.Sprintf("%.*f%%", digits, fraction*100)
}

// FormatPremium formats an option premium.
func FormatPremium(premium float64) string {
	return fmt.Sprintf("%.4f", premium)
}

// FormatCount formats an integer with thousands separators,
// e.g. 10000 becomes "10,000".
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
