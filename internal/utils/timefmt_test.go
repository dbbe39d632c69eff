package utils

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	value := time.Date(2024, time.March, 5, 14, 30, 59, 0, time.Local)
	if actual := FormatTimestamp(value); actual != "2024-03-05 14:30" {
		t.Errorf("FormatTimestamp = %q, expected 2024-03-05 14:30", actual)
	}
}

func TestFormatTimestampZeroValue(t *testing.T) {
	if actual := FormatTimestamp(time.Time{}); actual != "" {
		t.Errorf("FormatTimestamp(zero) = %q, expected empty", actual)
	}
}
