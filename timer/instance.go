package timer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotRunning is returned when stopping an instance that has already
// been finalized.
var ErrNotRunning = errors.New("instance is not running")

// Instance is one timed interval belonging to an activity. A nil End
// means the instance is still running. Duration is derived state: it is
// always End minus Start and is recomputed on load, never trusted from
// the ledger file.
type Instance struct {
	// ID is a stable surrogate identifier assigned at creation.
	// Lookups and deletes key on it; the encoded start timestamp is
	// kept purely as the ledger join/sort key.
	ID       string
	Start    time.Time
	End      *time.Time
	Duration time.Duration
}

// NewInstance creates a running instance starting at the given time.
func NewInstance(start time.Time) *Instance {
	return &Instance{
		ID:    uuid.NewString(),
		Start: start,
	}
}

// RestoreInstance reconstructs a finalized instance from persisted
// timestamps. The duration is recomputed from the pair.
func RestoreInstance(start, end time.Time) *Instance {
	e := end
	return &Instance{
		ID:       uuid.NewString(),
		Start:    start,
		End:      &e,
		Duration: end.Sub(start),
	}
}

// IsRunning reports whether the instance has no end time yet.
func (i *Instance) IsRunning() bool {
	return i.End == nil
}

// Stop finalizes the instance at the given time and returns its duration.
// Returns ErrNotRunning if the instance was already finalized.
func (i *Instance) Stop(now time.Time) (time.Duration, error) {
	if !i.IsRunning() {
		return 0, ErrNotRunning
	}
	end := now
	i.End = &end
	i.Duration = end.Sub(i.Start)
	return i.Duration, nil
}

// Elapsed returns the live duration since start. The second return is
// false once the instance has been finalized.
func (i *Instance) Elapsed(now time.Time) (time.Duration, bool) {
	if !i.IsRunning() {
		return 0, false
	}
	return now.Sub(i.Start), true
}

// StartKey returns the canonical serialized start timestamp. It must
// match the persisted encoding exactly or ledger-keyed lookups miss.
func (i *Instance) StartKey() string {
	return EncodeTime(i.Start)
}
