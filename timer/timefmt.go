package timer

import (
	"fmt"
	"time"
)

// TimeLayout is the fixed wall-clock encoding used in the ledger file:
// two-digit year, zero-padded fields, microsecond precision. Rows encoded
// this way sort lexically within one century.
const TimeLayout = "06-01-02 15:04:05.000000"

// EncodeTime renders t in the ledger encoding.
func EncodeTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a timestamp in the ledger encoding.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatHMS renders a duration as H:MM:SS with seconds truncation,
// e.g. "0:10:00". Negative durations render as zero.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// FormatHM renders a duration as H:MM, dropping seconds. Used by the
// windowed reports.
func FormatHM(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
