package timer

import "time"

// Activity is a named activity and its ordered interval history. The
// activity owns its instances exclusively; removing an activity removes
// all of its history. Append order is chronological by convention.
type Activity struct {
	Name      string
	Instances []*Instance
}

// NewActivity creates an empty activity. The instance slice is always
// freshly allocated, never shared between activities.
func NewActivity(name string) *Activity {
	return &Activity{
		Name:      name,
		Instances: make([]*Instance, 0),
	}
}

// AddInstance appends a new running instance starting at the given time.
// The caller (the tracker) is responsible for the global single-timer
// invariant; this method does not forbid starting while already running.
func (a *Activity) AddInstance(start time.Time) *Instance {
	inst := NewInstance(start)
	a.Instances = append(a.Instances, inst)
	return inst
}

// LastInstance returns the most recently appended instance, or nil.
func (a *Activity) LastInstance() *Instance {
	if len(a.Instances) == 0 {
		return nil
	}
	return a.Instances[len(a.Instances)-1]
}

// IsRunning reports whether the last instance is still running. Only the
// last instance may ever be running; earlier ones are immutable once
// finalized.
func (a *Activity) IsRunning() bool {
	last := a.LastInstance()
	return last != nil && last.IsRunning()
}

// StopTimer finalizes the running instance, if any, and returns its
// duration. The second return is false when nothing was running; that is
// a no-op, not an error.
func (a *Activity) StopTimer(now time.Time) (time.Duration, bool) {
	if !a.IsRunning() {
		return 0, false
	}
	d, err := a.LastInstance().Stop(now)
	if err != nil {
		return 0, false
	}
	return d, true
}

// TotalTime sums the durations of all finalized instances. A currently
// running instance contributes nothing until it is stopped.
func (a *Activity) TotalTime() time.Duration {
	var total time.Duration
	for _, inst := range a.Instances {
		if !inst.IsRunning() {
			total += inst.Duration
		}
	}
	return total
}

// TotalTimeString renders TotalTime as H:MM:SS.
func (a *Activity) TotalTimeString() string {
	return FormatHMS(a.TotalTime())
}

// HoursLastWeek sums durations of instances that started on or after the
// midnight seven calendar days before now. The cutoff is now minus seven
// days, further reduced by the current hour and minute. This is the
// historical truncation rule, not a rolling 168-hour window.
func (a *Activity) HoursLastWeek(now time.Time) time.Duration {
	cutoff := now.Add(-7 * 24 * time.Hour)
	cutoff = cutoff.Add(-time.Duration(now.Hour()) * time.Hour)
	cutoff = cutoff.Add(-time.Duration(now.Minute()) * time.Minute)

	var total time.Duration
	for _, inst := range a.Instances {
		if inst.IsRunning() {
			continue
		}
		if !inst.Start.Before(cutoff) {
			total += inst.Duration
		}
	}
	return total
}

// DeleteInstance removes the instance with the given surrogate ID.
// Returns false if no instance matches; nothing else is touched.
func (a *Activity) DeleteInstance(id string) bool {
	for idx, inst := range a.Instances {
		if inst.ID == id {
			a.Instances = append(a.Instances[:idx], a.Instances[idx+1:]...)
			return true
		}
	}
	return false
}

// DeleteInstanceByStart removes the first instance whose serialized start
// timestamp equals the given key. Used by ledger-driven flows where only
// the persisted row is known.
func (a *Activity) DeleteInstanceByStart(key string) bool {
	for idx, inst := range a.Instances {
		if inst.StartKey() == key {
			a.Instances = append(a.Instances[:idx], a.Instances[idx+1:]...)
			return true
		}
	}
	return false
}
