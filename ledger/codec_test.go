package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis52/timetrack/timer"
)

func testClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now },
		func(d time.Duration) { now = now.Add(d) }
}

func TestSerialize_Deserialize_RoundTrip(t *testing.T) {
	base := time.Date(2024, 3, 13, 9, 0, 0, 123456000, time.Local)
	now, advance := testClock(base)

	tr := timer.NewTracker(timer.WithClock(now))
	tr.AddActivity("Reading")
	tr.AddActivity("Writing")

	tr.StartTimer("Reading")
	advance(10 * time.Minute)
	tr.StopTimer()

	tr.StartTimer("Writing")
	advance(5 * time.Second)
	tr.StopTimer()

	tr.StartTimer("Reading")
	advance(30 * time.Minute)
	tr.StopTimer()

	loaded, err := Deserialize(Serialize(tr))
	require.NoError(t, err)

	want := TrackerRows(tr)
	got := TrackerRows(loaded)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].Activity, got[i].Activity)
		assert.True(t, want[i].Start.Equal(got[i].Start), "start preserved")
		assert.True(t, want[i].End.Equal(got[i].End), "end preserved")
	}

	// Durations are recomputed from the timestamps, exactly.
	reading, _ := loaded.Activity("Reading")
	require.Len(t, reading.Instances, 2)
	assert.Equal(t, 10*time.Minute, reading.Instances[0].Duration)
	assert.Equal(t, 30*time.Minute, reading.Instances[1].Duration)
	assert.Equal(t, 1, len(loaded.Activities())-1, "activity grouping preserves file order")
	assert.Equal(t, "Reading", loaded.Activities()[0].Name)
}

func TestSerialize_FinalizesRunningInstance(t *testing.T) {
	base := time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local)
	now, advance := testClock(base)

	tr := timer.NewTracker(timer.WithClock(now))
	tr.AddActivity("Reading")
	tr.StartTimer("Reading")
	advance(time.Minute)

	data := Serialize(tr)

	assert.Equal(t, timer.Idle, tr.State(), "serialize triggers an implicit stop")

	rows, err := Rows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, time.Minute, rows[0].Duration())
}

func TestDeserialize_EmptyInput(t *testing.T) {
	tr, err := Deserialize(nil)
	require.NoError(t, err)
	assert.Empty(t, tr.Activities())
}

func TestDeserialize_BadTimestampAbortsLoad(t *testing.T) {
	data := []byte("Activity,Start,End\n" +
		"Reading,24-03-13 09:00:00.000000,24-03-13 09:10:00.000000\n" +
		"Reading,garbage,24-03-13 10:10:00.000000\n")

	_, err := Deserialize(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse, "one bad row refuses the whole load")
}

func TestRows_BadFieldCount(t *testing.T) {
	data := []byte("Activity,Start,End\nReading,24-03-13 09:00:00.000000\n")
	_, err := Rows(data)
	assert.ErrorIs(t, err, ErrParse)
}

func TestRows_ActivityNamedLikeHeader(t *testing.T) {
	// Only a full header record is skipped; an activity literally named
	// "Activity" in the first row is data.
	data := []byte("Activity,24-03-13 09:00:00.000000,24-03-13 09:10:00.000000\n")

	rows, err := Rows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Activity", rows[0].Activity)
	assert.Equal(t, 10*time.Minute, rows[0].Duration())
}

func TestRows_HeaderSkipped(t *testing.T) {
	data := []byte("Activity,Start,End\n" +
		"Activity,24-03-13 09:00:00.000000,24-03-13 09:10:00.000000\n")

	rows, err := Rows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Activity", rows[0].Activity)
}
