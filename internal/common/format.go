package common

import (
	"fmt"
	"strconv"
)

// FormatMarketCap renders a dollar amount with a T/B/M suffix
func FormatMarketCap(v int64) string {
	f := float64(v)
	switch {
	case f >= 1e12:
		return fmt.Sprintf("$%.2fT", f/1e12)
	case f >= 1e9:
		return fmt.Sprintf("$%.2fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("$%.2fM", f/1e6)
	default:
		return fmt.Sprintf("$%d", v)
	}
}

// FormatVolume renders a share count with thousands separators
func FormatVolume(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := v < 0
	if neg {
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatSignedPct renders a percentage with an explicit sign
func FormatSignedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
