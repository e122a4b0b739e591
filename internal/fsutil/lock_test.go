package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithLock_KeepsLockFile verifies that the lock file is created while
// fn runs and left in place afterwards.
func TestWithLock_KeepsLockFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	err := WithLock(target, func() error {
		_, statErr := os.Stat(LockPath(target))
		assert.NoError(t, statErr, "lock file should exist while held")
		return os.WriteFile(target, []byte("data"), 0o644)
	})
	require.NoError(t, err)

	_, err = os.Stat(LockPath(target))
	assert.NoError(t, err, "lock file should persist after release")

	// The leftover file does not keep the lock held.
	require.NoError(t, WithLock(target, func() error { return nil }))
}

// TestFileLock_HandoffKeepsSingleHolder verifies that when a blocked waiter
// takes over a released lock, a newcomer still cannot acquire it.
func TestFileLock_HandoffKeepsSingleHolder(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	first := NewFileLock(target)
	require.NoError(t, first.Lock())

	second := NewFileLock(target)
	acquired := make(chan error, 1)
	go func() {
		acquired <- second.Lock()
	}()

	select {
	case err := <-acquired:
		t.Fatalf("second lock acquired while first was held: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Unlock())

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second lock not acquired after first was released")
	}
	defer func() { assert.NoError(t, second.Unlock()) }()

	newcomer := flock.New(LockPath(target))
	locked, err := newcomer.TryLock()
	require.NoError(t, err)
	if locked {
		_ = newcomer.Unlock()
	}
	assert.False(t, locked, "newcomer must not acquire a lock held by the waiter")
}

// TestWithLock_PropagatesError verifies that the callback error is
// returned and the lock is still released.
func TestWithLock_PropagatesError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")
	boom := errors.New("boom")

	err := WithLock(target, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// A second acquisition must not block.
	require.NoError(t, WithLock(target, func() error { return nil }))
}

// TestWithLock_MissingDirectory verifies that an unreachable target fails
// before fn is called.
func TestWithLock_MissingDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing", "out.txt")
	called := false

	err := WithLock(target, func() error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
