package smoke

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFileName is the run lock shared by all harness invocations on a
// host. Two concurrent runs would fight over the registry port and the
// local image store, so the second one fails fast instead.
const lockFileName = "regsmoke.lock"

func acquireRunLock() (*flock.Flock, error) {
	path := filepath.Join(os.TempDir(), lockFileName)
	lock := flock.New(path)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("cannot acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another smoke run is active (lock: %s)", path)
	}
	return lock, nil
}

func releaseRunLock(lock *flock.Flock) {
	if lock == nil {
		return
	}
	_ = lock.Unlock()
}
