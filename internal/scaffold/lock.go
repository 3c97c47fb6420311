package scaffold

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a blocked AcquireLock retries.
const lockRetryDelay = 100 * time.Millisecond

// ErrLockUnavailable means the lock file could not be created at all, as
// opposed to being held by another run.
var ErrLockUnavailable = errors.New("lock unavailable")

// LockPath returns the lock file used for baseDir inside lockDir. Distinct
// spellings of the same directory map to the same lock.
func LockPath(lockDir, baseDir string) (string, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", baseDir, err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock"), nil
}

// AcquireLock takes an exclusive cross-process lock for baseDir, waiting
// until ctx is done. Callers release it with Unlock. Errors that come from
// the lock location rather than a competing run wrap ErrLockUnavailable.
func AcquireLock(ctx context.Context, lockDir, baseDir string) (*flock.Flock, error) {
	lockFile, err := LockPath(lockDir, baseDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating lock directory: %w", ErrLockUnavailable, err)
	}

	fileLock := flock.New(lockFile)
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLockUnavailable, lockFile, err)
		}
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", baseDir, err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire lock for %s (timeout)", baseDir)
	}
	return fileLock, nil
}
