package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	lockFileName = ".csim.lock"
	filePerms    = 0o644
)

// WithRunLock holds an exclusive advisory lock on the out directory
// while fn runs, so two csim processes never interleave result writes
// in the same directory. The lock serializes processes only; it
// shares no data between them.
func WithRunLock(outDir string, fn func() error) error {
	if err := os.MkdirAll(outDir, dirPerms); err != nil {
		return fmt.Errorf("creating out dir: %w", err)
	}

	lockPath := filepath.Join(outDir, lockFileName)

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerms) //nolint:gosec // path derives from configured out dir
	if err != nil {
		return fmt.Errorf("opening run lock: %w", err)
	}

	defer func() { _ = f.Close() }()

	if err := flockRetry(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("locking %s: %w", lockPath, err)
	}

	defer func() { _ = unix.Flock(int(f.Fd()), unix.LOCK_UN) }()

	return fn()
}

// flockRetry calls flock, retrying on EINTR.
func flockRetry(fd, how int) error {
	for {
		err := unix.Flock(fd, how)
		if err != unix.EINTR { //nolint:errorlint // unix errnos compare directly
			return err
		}
	}
}
