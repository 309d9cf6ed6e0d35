package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTime(t *testing.T) {
	ts := time.Date(2024, 3, 13, 9, 5, 7, 123456000, time.Local)
	assert.Equal(t, "24-03-13 09:05:07.123456", EncodeTime(ts))
}

func TestParseTime_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 13, 9, 5, 7, 123456000, time.Local)

	parsed, err := ParseTime(EncodeTime(ts))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts), "round trip should preserve the instant")
}

func TestParseTime_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not a timestamp",
		"2024-03-13 09:05:07.123456", // four-digit year
		"24-03-13 09:05:07",          // missing microseconds
	}
	for _, input := range cases {
		_, err := ParseTime(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestFormatHMS(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{5 * time.Second, "0:00:05"},
		{10 * time.Minute, "0:10:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{25 * time.Hour, "25:00:00"},
		{90*time.Minute + 500*time.Millisecond, "1:30:00"},
		{-time.Minute, "0:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatHMS(tc.d))
	}
}

func TestFormatHM(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:00"},
		{10 * time.Minute, "0:10"},
		{3*time.Hour + 45*time.Minute + 59*time.Second, "3:45"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatHM(tc.d))
	}
}
