// Package report computes windowed summaries over ledger rows.
//
// Windows are recomputed on every call relative to the supplied "now";
// nothing is cached.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nomis52/timetrack/ledger"
	"github.com/nomis52/timetrack/timer"
)

// Window selects the reporting date range.
type Window int

const (
	// Week is Monday through Sunday of the week containing now.
	Week Window = iota

	// Month is the first through last calendar day of now's month.
	Month

	// Year is Jan 1 through Dec 31 of now's year.
	Year
)

// String returns a human-readable representation of the Window.
func (w Window) String() string {
	switch w {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// ParseWindow converts a string to a Window.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "year":
		return Year, nil
	default:
		return Week, fmt.Errorf("unknown report window: %s", s)
	}
}

// Range returns the half-open [start, end) interval covering the window's
// inclusive date range.
func (w Window) Range(now time.Time) (time.Time, time.Time) {
	switch w {
	case Month:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	case Year:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0)
	default:
		// Days since Monday; Go weekdays start on Sunday.
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = start.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	}
}

// Contains reports whether a row starting at t falls in the window.
func (w Window) Contains(t, now time.Time) bool {
	start, end := w.Range(now)
	return !t.Before(start) && t.Before(end)
}

// Entry is one activity's total inside a window.
type Entry struct {
	Activity string
	Total    time.Duration
}

// TotalString renders the total truncated to H:MM, seconds dropped.
func (e Entry) TotalString() string {
	return timer.FormatHM(e.Total)
}

// Aggregate filters rows whose start falls in the window, groups them by
// activity, and sums the recomputed durations. Entries are sorted by
// activity name.
func Aggregate(rows []ledger.Row, w Window, now time.Time) []Entry {
	totals := make(map[string]time.Duration)
	for _, row := range rows {
		if !w.Contains(row.Start, now) {
			continue
		}
		totals[row.Activity] += row.Duration()
	}

	entries := make([]Entry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, Entry{Activity: name, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Activity < entries[j].Activity
	})
	return entries
}

// Detail renders every row grouped by activity, one line per instance
// with start, end, and duration. Activities appear in row order.
func Detail(rows []ledger.Row) string {
	var b strings.Builder
	byActivity := make(map[string][]ledger.Row)
	var order []string
	for _, row := range rows {
		if _, seen := byActivity[row.Activity]; !seen {
			order = append(order, row.Activity)
		}
		byActivity[row.Activity] = append(byActivity[row.Activity], row)
	}

	for _, name := range order {
		fmt.Fprintf(&b, "Activity: %s\n", name)
		for _, row := range byActivity[name] {
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				timer.EncodeTime(row.Start),
				timer.EncodeTime(row.End),
				timer.FormatHMS(row.Duration()),
			)
		}
		b.WriteString("\n")
	}
	return b.String()
}
