package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_TotalTimeExcludesRunning(t *testing.T) {
	start := time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local)
	a := NewActivity("Reading")

	a.AddInstance(start)
	_, ok := a.StopTimer(start.Add(10 * time.Minute))
	require.True(t, ok)

	// Second instance still running.
	a.AddInstance(start.Add(20 * time.Minute))

	assert.Equal(t, 10*time.Minute, a.TotalTime())
	assert.Equal(t, "0:10:00", a.TotalTimeString())
}

func TestActivity_StopTimerNoOpWhenNotRunning(t *testing.T) {
	a := NewActivity("Reading")

	_, ok := a.StopTimer(time.Now())
	assert.False(t, ok, "stop on empty activity is a no-op")

	start := time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local)
	a.AddInstance(start)
	_, ok = a.StopTimer(start.Add(time.Minute))
	require.True(t, ok)

	_, ok = a.StopTimer(start.Add(2 * time.Minute))
	assert.False(t, ok, "stop after finalize is a no-op")
}

func TestActivity_DeleteInstancePrecision(t *testing.T) {
	start := time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local)
	a := NewActivity("Reading")

	a.AddInstance(start)
	a.StopTimer(start.Add(time.Minute))
	target := a.AddInstance(start.Add(time.Hour))
	a.StopTimer(start.Add(time.Hour + time.Minute))
	a.AddInstance(start.Add(2 * time.Hour))
	a.StopTimer(start.Add(2*time.Hour + time.Minute))

	before := []*Instance{a.Instances[0], a.Instances[2]}

	require.True(t, a.DeleteInstance(target.ID))
	require.Len(t, a.Instances, 2)
	assert.Same(t, before[0], a.Instances[0], "other instances untouched")
	assert.Same(t, before[1], a.Instances[1], "other instances untouched")

	assert.False(t, a.DeleteInstance("no-such-id"), "unknown key is not-found")
	assert.Len(t, a.Instances, 2, "failed delete mutates nothing")
}

func TestActivity_DeleteInstanceByStart(t *testing.T) {
	start := time.Date(2024, 3, 13, 9, 5, 7, 123456000, time.Local)
	a := NewActivity("Reading")
	a.AddInstance(start)
	a.StopTimer(start.Add(time.Minute))

	assert.False(t, a.DeleteInstanceByStart("24-03-13 09:05:07.000000"))
	assert.True(t, a.DeleteInstanceByStart("24-03-13 09:05:07.123456"))
	assert.Empty(t, a.Instances)
}

func TestActivity_HoursLastWeekTruncation(t *testing.T) {
	// now = Wednesday 2024-03-13 14:30; cutoff = 2024-03-06 00:00
	// (seven days back, then minus the current hour and minute).
	now := time.Date(2024, 3, 13, 14, 30, 0, 0, time.Local)
	a := NewActivity("Reading")

	add := func(start time.Time, d time.Duration) {
		a.AddInstance(start)
		a.StopTimer(start.Add(d))
	}

	add(time.Date(2024, 3, 5, 23, 59, 0, 0, time.Local), time.Hour)  // before cutoff
	add(time.Date(2024, 3, 6, 0, 0, 0, 0, time.Local), 2*time.Hour)  // exactly at cutoff
	add(time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local), 3*time.Hour)

	assert.Equal(t, 5*time.Hour, a.HoursLastWeek(now))
}
