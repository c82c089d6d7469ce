package waterfall

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockSchedule takes an exclusive advisory lock guarding the schedule file,
// and returns the function releasing it. Two overlapping invocations (say,
// overlapping cron triggers) could otherwise both observe a pending, due
// cycle and issue the transfers twice.
//
// The lock is non-blocking: if another run holds it, LockSchedule returns
// ErrBusy immediately instead of waiting for a run of unknown duration.
func LockSchedule(filename string) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, err
	}
	// Lock a sibling file, not the schedule itself: SaveSchedule replaces the
	// schedule by rename, which would silently detach the lock from the path.
	fl := flock.New(filename + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrBusy
	}
	return func() { fl.Unlock() }, nil
}
