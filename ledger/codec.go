// Package ledger persists the tracker as a row-oriented CSV table and
// owns the single flat file both the local session and the sync listener
// read and write.
package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nomis52/timetrack/timer"
)

// ErrParse is returned when a persisted row cannot be decoded. A single
// bad row aborts the entire load: silently dropping rows would corrupt
// history invisibly.
var ErrParse = errors.New("malformed ledger row")

// columns of the persisted table, in file order.
var header = []string{"Activity", "Start", "End"}

// Row is one persisted instance. Duration is deliberately not a column:
// it is always recomputed as End minus Start on load.
type Row struct {
	Activity string
	Start    time.Time
	End      time.Time
}

// Duration returns the recomputed span of the row.
func (r Row) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Serialize renders the tracker as the CSV ledger table. A still-running
// instance is finalized first so the persisted file never contains an
// open interval.
func Serialize(t *timer.Tracker) []byte {
	t.StopTimer()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(header)
	for _, activity := range t.Activities() {
		for _, inst := range activity.Instances {
			w.Write([]string{
				activity.Name,
				timer.EncodeTime(inst.Start),
				timer.EncodeTime(*inst.End),
			})
		}
	}
	w.Flush()
	return buf.Bytes()
}

// Rows decodes the CSV ledger table. Empty input yields no rows. Any
// record that cannot be decoded aborts the load with an ErrParse-wrapped
// error.
func Rows(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(header)

	var rows []Row
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		if line == 1 && record[0] == header[0] && record[1] == header[1] && record[2] == header[2] {
			continue
		}

		start, err := timer.ParseTime(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		end, err := timer.ParseTime(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		rows = append(rows, Row{Activity: record[0], Start: start, End: end})
	}
	return rows, nil
}

// Deserialize reconstructs a tracker from the CSV ledger table. Rows are
// grouped by activity preserving file order, and every instance duration
// is recomputed from its timestamps.
func Deserialize(data []byte, opts ...timer.Option) (*timer.Tracker, error) {
	rows, err := Rows(data)
	if err != nil {
		return nil, err
	}

	t := timer.NewTracker(opts...)
	for _, row := range rows {
		t.AddActivity(row.Activity)
		activity, _ := t.Activity(row.Activity)
		activity.Instances = append(activity.Instances, timer.RestoreInstance(row.Start, row.End))
	}
	return t, nil
}

// TrackerRows lists the finalized instances of a live tracker as ledger
// rows, without mutating it. A running instance is not included.
func TrackerRows(t *timer.Tracker) []Row {
	var rows []Row
	for _, activity := range t.Activities() {
		for _, inst := range activity.Instances {
			if inst.IsRunning() {
				continue
			}
			rows = append(rows, Row{
				Activity: activity.Name,
				Start:    inst.Start,
				End:      *inst.End,
			})
		}
	}
	return rows
}
