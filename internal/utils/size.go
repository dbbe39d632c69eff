package utils

import (
	"fmt"
	"strconv"
)

// FormatSize converts a byte length into a compact human-readable string using
// binary-prefix suffixes: plain bytes below 1024, then K, M, and G with one decimal.
func FormatSize(sizeBytes int64) string {
	switch {
	case sizeBytes < 1024:
		return strconv.FormatInt(sizeBytes, 10)
	case sizeBytes < 1024*1024:
		return fmt.Sprintf("%.1fK", float64(sizeBytes)/1024)
	case sizeBytes < 1024*1024*1024:
		return fmt.Sprintf("%.1fM", float64(sizeBytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.1fG", float64(sizeBytes)/(1024*1024*1024))
	}
}

// FormatTokenCount converts a token count into a compact human-readable string
// using decimal-prefix suffixes: plain counts below 1000, then K, M, and B with one decimal.
func FormatTokenCount(tokenCount int) string {
	switch {
	case tokenCount < 1000:
		return strconv.Itoa(tokenCount)
	case tokenCount < 1000*1000:
		return fmt.Sprintf("%.1fK", float64(tokenCount)/1000)
	case tokenCount < 1000*1000*1000:
		return fmt.Sprintf("%.1fM", float64(tokenCount)/(1000*1000))
	default:
		return fmt.Sprintf("%.1fB", float64(tokenCount)/(1000*1000*1000))
	}
}
