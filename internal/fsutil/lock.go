// Package fsutil provides advisory file locking for the files filebundler
// writes, so two concurrent runs targeting the same path cannot interleave.
package fsutil

import (
	"fmt"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a target path to derive its lock file.
const LockSuffix = ".lock"

// LockPath returns the lock file path guarding target.
func LockPath(target string) string {
	return target + LockSuffix
}

// FileLock wraps a flock file lock for coordinating writes to a target file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock guarding target. The lock file itself lives
// next to the target at LockPath(target).
func NewFileLock(target string) *FileLock {
	path := LockPath(target)
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// Unlock releases the lock. The lock file is left in place: unlinking it
// would let a waiter holding the old inode and a newcomer creating a
// fresh one both acquire the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// WithLock runs fn while holding the lock for target. The lock is released
// even when fn fails; an fn error takes precedence over an unlock error.
func WithLock(target string, fn func() error) (err error) {
	lock := NewFileLock(target)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()

	return fn()
}
