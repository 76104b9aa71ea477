package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (B, KiB, MiB, GiB, ...).
// Negative values are formatted by magnitude.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = -bytes
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.2 MiB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
	}
	return sign + FormatBytes(bytes)
}

// FormatDimensions returns "WxH", or "?" when either side is unknown.
func FormatDimensions(width, height int) string {
	if width <= 0 || height <= 0 {
		return "?"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatRatio returns how out compares to in as a signed percentage of in
// (e.g. "-42.0%"). An empty input yields "n/a".
func FormatRatio(in, out int64) string {
	if in <= 0 {
		return "n/a"
	}
	pct := float64(out-in) / float64(in) * 100
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatCount renders n with thousands separators ("12,345").
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
