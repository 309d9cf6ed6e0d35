// Package timer implements the activity/timer domain engine: timed
// interval instances, named activities, and the tracker state machine
// that enforces the single-active-timer invariant.
package timer

import "time"

// State represents the tracker's timer state.
type State int

const (
	// Idle indicates no instance anywhere is running.
	Idle State = iota

	// Running indicates exactly one activity has a running instance.
	Running
)

// String returns a human-readable representation of the State.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Tracker is the registry of activities plus the single global "which
// timer, if any, is running" state machine. At most one instance across
// the entire tracker is running at any observable point.
//
// All mutating operations are driven synchronously from one session;
// the tracker itself carries no locking.
type Tracker struct {
	activities map[string]*Activity
	order      []string
	current    string // running activity name, "" when idle
	selected   string // view selection, independent of the timer
	now        func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the tracker's time source. Used by tests to drive
// a simulated clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker creates an empty tracker. The activity map is freshly
// allocated per tracker, never shared.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		activities: make(map[string]*Activity),
		order:      make([]string, 0),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker's current wall-clock time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// State returns Idle or Running.
func (t *Tracker) State() State {
	if t.current == "" {
		return Idle
	}
	return Running
}

// CurrentActivity returns the name of the running activity. The second
// return is false when the tracker is idle.
func (t *Tracker) CurrentActivity() (string, bool) {
	if t.current == "" {
		return "", false
	}
	return t.current, true
}

// Activity looks up an activity by name.
func (t *Tracker) Activity(name string) (*Activity, bool) {
	a, ok := t.activities[name]
	return a, ok
}

// Activities returns all activities in registration order.
func (t *Tracker) Activities() []*Activity {
	result := make([]*Activity, 0, len(t.order))
	for _, name := range t.order {
		result = append(result, t.activities[name])
	}
	return result
}

// AddActivity registers a new empty activity. Returns false without
// mutating anything if the name is already taken.
func (t *Tracker) AddActivity(name string) bool {
	if _, exists := t.activities[name]; exists {
		return false
	}
	t.activities[name] = NewActivity(name)
	t.order = append(t.order, name)
	return true
}

// RemoveActivity deletes an activity and all of its history. Returns
// false if the name is unknown. If the removed activity held the running
// timer, the tracker transitions to idle before the activity is dropped
// so no dangling reference survives.
func (t *Tracker) RemoveActivity(name string) bool {
	if _, exists := t.activities[name]; !exists {
		return false
	}
	if t.current == name {
		t.current = ""
	}
	if t.selected == name {
		t.selected = ""
	}
	delete(t.activities, name)
	for idx, n := range t.order {
		if n == name {
			t.order = append(t.order[:idx], t.order[idx+1:]...)
			break
		}
	}
	return true
}

// StartTimer starts a new running instance on the named activity.
// Returns false if the name is not registered. If another timer is
// already running it is silently finalized first: starting is a
// takeover, not an error.
func (t *Tracker) StartTimer(name string) bool {
	activity, ok := t.activities[name]
	if !ok {
		return false
	}
	if t.current != "" {
		t.StopTimer()
	}
	activity.AddInstance(t.now())
	t.current = name
	return true
}

// StopTimer finalizes the running instance and returns its duration.
// The second return is false when the tracker is idle; that is a no-op.
func (t *Tracker) StopTimer() (time.Duration, bool) {
	if t.current == "" {
		return 0, false
	}
	activity := t.activities[t.current]
	d, ok := activity.StopTimer(t.now())
	t.current = ""
	return d, ok
}

// LiveElapsed returns the running instance's elapsed duration. Read-only
// and side-effect free; intended for the periodic display refresh. The
// second return is false when idle.
func (t *Tracker) LiveElapsed() (time.Duration, bool) {
	if t.current == "" {
		return 0, false
	}
	return t.activities[t.current].LastInstance().Elapsed(t.now())
}

// SelectActivity marks an activity as the viewing selection. Selection is
// independent of the timer: selecting while a different activity's timer
// runs does not touch that timer. Returns false for unknown names.
func (t *Tracker) SelectActivity(name string) bool {
	if _, exists := t.activities[name]; !exists {
		return false
	}
	t.selected = name
	return true
}

// DeselectActivity clears the viewing selection. A running timer keeps
// running.
func (t *Tracker) DeselectActivity() {
	t.selected = ""
}

// SelectedActivity returns the viewing selection, if any.
func (t *Tracker) SelectedActivity() (string, bool) {
	if t.selected == "" {
		return "", false
	}
	return t.selected, true
}

// DeleteInstance removes one instance from the named activity by
// surrogate ID. If the deleted instance was the running one, the tracker
// transitions to idle. Returns false if the activity or instance is
// unknown.
func (t *Tracker) DeleteInstance(activity, id string) bool {
	a, ok := t.activities[activity]
	if !ok {
		return false
	}
	wasRunning := false
	if last := a.LastInstance(); last != nil && last.ID == id && last.IsRunning() {
		wasRunning = true
	}
	if !a.DeleteInstance(id) {
		return false
	}
	if wasRunning && t.current == activity {
		t.current = ""
	}
	return true
}

// RunningCount returns the number of running instances across all
// activities. It is always 0 or 1; exposed for invariant checks.
func (t *Tracker) RunningCount() int {
	count := 0
	for _, a := range t.activities {
		if a.IsRunning() {
			count++
		}
	}
	return count
}
