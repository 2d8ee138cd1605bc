//go:build windows

package filelock

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// LockFileEx flags; x/sys/windows does not export them.
const (
	lockfileExclusiveLock   = 0x00000002
	lockfileFailImmediately = 0x00000001
)

const lockRetryInterval = time.Millisecond

// lockFile takes an exclusive lock on the first byte of f. It polls with
// LOCKFILE_FAIL_IMMEDIATELY rather than issuing a blocking LockFileEx,
// which would pin the OS thread while another process holds the lock.
func lockFile(f *os.File) error {
	for {
		err := windows.LockFileEx(
			windows.Handle(f.Fd()),
			lockfileExclusiveLock|lockfileFailImmediately,
			0, 1, 0,
			new(windows.Overlapped),
		)
		if err == nil {
			return nil
		}
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		time.Sleep(lockRetryInterval)
	}
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, new(windows.Overlapped))
}
